// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	userstore "github.com/varzeapro/varzeapro/internal/app/store/users"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/authutil"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(users *userstore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type signInFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /sign-in                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSignIn(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, postSignInDest(u, ""), http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "sign_in", signInFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Entrar", "/"),
		ReturnURL: query.Get(r, "return"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /sign-in                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignInPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/sign-in")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	ret := strings.TrimSpace(r.FormValue("return"))

	if email == "" || password == "" {
		h.renderFormWithError(w, r, "Informe e-mail e senha.", email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		// Same message for unknown email and wrong password.
		h.renderFormWithError(w, r, "E-mail ou senha incorretos.", email, ret)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "DB find user", err, "Erro no servidor. Tente novamente.", "/sign-in")
		return
	}

	if u.PasswordHash == nil || !authutil.CheckPassword(password, *u.PasswordHash) {
		h.Log.Warn("sign-in failed: wrong password", zap.String("user_id", u.ID.Hex()))
		h.renderFormWithError(w, r, "E-mail ou senha incorretos.", email, ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "Não foi possível criar a sessão. Tente novamente.", "/sign-in")
		return
	}

	h.Log.Info("sign-in success", zap.String("user_id", u.ID.Hex()))

	su := &auth.SessionUser{Role: u.Role, OnboardingCompleted: u.OnboardingCompleted}
	http.Redirect(w, r, postSignInDest(su, ret), http.StatusSeeOther)
}

// postSignInDest picks where a freshly signed-in user lands: the sanitized
// return URL when one was carried through, otherwise their dashboard if
// onboarding finished, otherwise the welcome screen.
func postSignInDest(u *auth.SessionUser, returnURL string) string {
	fallback := guard.WelcomePath
	if u.OnboardingCompleted {
		if dash := guard.DashboardPath(u.Role); dash != "" {
			fallback = dash
		}
	}
	return urlutil.SafeReturn(returnURL, "", fallback)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "sign_in", signInFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Entrar", "/"),
		Error:     msg,
		Email:     email,
		ReturnURL: ret,
	})
}
