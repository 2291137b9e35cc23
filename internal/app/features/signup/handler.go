// internal/app/features/signup/handler.go
package signup

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	userstore "github.com/varzeapro/varzeapro/internal/app/store/users"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/authutil"
	"github.com/varzeapro/varzeapro/internal/app/system/msgs"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"github.com/varzeapro/varzeapro/internal/domain/models"
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

type signUpFormData struct {
	viewdata.BaseVM
	Error         string
	FullName      string
	Email         string
	PasswordRules string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /sign-up                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeSignUp(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/welcome", http.StatusSeeOther)
		return
	}

	templates.Render(w, r, "sign_up", signUpFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Criar conta", "/"),
		PasswordRules: authutil.PasswordRules(),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /sign-up                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSignUpPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/sign-up")
		return
	}

	fullName := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if len(fullName) < 2 {
		h.renderFormWithError(w, r, "Informe seu nome completo.", fullName, email)
		return
	}
	if !authutil.ValidEmail(email) {
		h.renderFormWithError(w, r, "Informe um e-mail válido.", fullName, email)
		return
	}
	if password != confirm {
		h.renderFormWithError(w, r, "As senhas não conferem.", fullName, email)
		return
	}
	if err := authutil.ValidatePassword(password); err != nil {
		h.renderFormWithError(w, r, err.Error(), fullName, email)
		return
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Erro no servidor. Tente novamente.", "/sign-up")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: &hash,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			h.renderFormWithError(w, r, msgs.LocalizeErr(err), fullName, email)
			return
		}
		h.ErrLog.LogServerError(w, r, "create user failed", err, "Erro no servidor. Tente novamente.", "/sign-up")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "sign-in after signup failed", err, "Conta criada, mas não foi possível entrar. Tente entrar.", "/sign-in")
		return
	}

	h.Log.Info("account created", zap.String("user_id", u.ID.Hex()))

	// New accounts have no role yet; the welcome screen asks for one.
	http.Redirect(w, r, "/welcome", http.StatusSeeOther)
}

type strengthVM struct {
	Score int
	Label string
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /sign-up/password-strength – htmx fragment for the strength meter      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePasswordStrength(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	score := authutil.PasswordStrength(r.FormValue("password"))
	templates.Render(w, r, "password_strength", strengthVM{
		Score: score,
		Label: authutil.StrengthLabel(score),
	})
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, fullName, email string) {
	templates.Render(w, r, "sign_up", signUpFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Criar conta", "/"),
		Error:         msg,
		FullName:      fullName,
		Email:         email,
		PasswordRules: authutil.PasswordRules(),
	})
}
