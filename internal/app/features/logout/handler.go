// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Drafts     *wizard.Store
}

func NewHandler(sessionMgr *auth.SessionManager, drafts *wizard.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Drafts:     drafts,
	}
}

// ServeSignOut handles POST /sign-out (and GET for plain links).
func (h *Handler) ServeSignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("sign-out: clear session", zap.Error(err))
	}

	// An in-progress onboarding draft belongs to the session that made it.
	if err := h.Drafts.Clear(w, r); err != nil {
		h.Log.Warn("sign-out: clear draft cookie", zap.Error(err))
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
