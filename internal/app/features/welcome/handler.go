// internal/app/features/welcome/handler.go
package welcome

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	userstore "github.com/varzeapro/varzeapro/internal/app/store/users"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/msgs"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	Drafts *wizard.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, drafts *wizard.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Drafts: drafts,
		ErrLog: errLog,
		Log:    logger,
	}
}

type welcomeData struct {
	viewdata.BaseVM
	Error        string
	SelectedRole string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /welcome – role selection                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeWelcome(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{})
	if !ok {
		return
	}

	draft := h.Drafts.Load(r)
	selected := draft.Role
	if selected == "" {
		selected = u.Role
	}

	templates.Render(w, r, "welcome", welcomeData{
		BaseVM:       viewdata.NewBaseVM(r, "Bem-vindo", "/"),
		SelectedRole: selected,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /welcome/role – choose Player or Team                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRolePost(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{})
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", guard.WelcomePath)
		return
	}

	role := strings.ToUpper(strings.TrimSpace(r.FormValue("role")))
	cfg, known := wizard.ConfigFor(role)
	if !known {
		h.renderWithError(w, r, "Escolha Jogador ou Time.", "")
		return
	}

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed session user id", err, "Sessão inválida. Entre novamente.", guard.SignInPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetRole(ctx, uid, role); err != nil {
		if errors.Is(err, userstore.ErrAlreadyOnboarded) {
			// The role that finished onboarding is final.
			uierrors.RenderForbidden(w, r, msgs.LocalizeErr(err), guard.DashboardPath(u.Role))
			return
		}
		h.ErrLog.LogServerError(w, r, "set role failed", err, "Erro no servidor. Tente novamente.", guard.WelcomePath)
		return
	}

	// Switching roles restarts the wizard: step one, clean slate for the
	// other role's data.
	draft := h.Drafts.Load(r)
	if draft.Role != role {
		draft.Reset()
		draft.SetRole(role)
	}
	if err := h.Drafts.Save(w, r, draft); err != nil {
		h.Log.Warn("save draft after role pick", zap.Error(err))
	}

	h.Log.Info("role selected",
		zap.String("user_id", u.ID),
		zap.String("role", role),
	)

	http.Redirect(w, r, cfg.StepRoute(1), http.StatusSeeOther)
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, msg, selected string) {
	templates.Render(w, r, "welcome", welcomeData{
		BaseVM:       viewdata.NewBaseVM(r, "Bem-vindo", "/"),
		Error:        msg,
		SelectedRole: selected,
	})
}
