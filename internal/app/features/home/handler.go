package home

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	// Signed-in users with a finished profile land on their dashboard.
	if u, ok := auth.CurrentUser(r); ok && u.OnboardingCompleted {
		if dash := guard.DashboardPath(u.Role); dash != "" {
			http.Redirect(w, r, dash, http.StatusSeeOther)
			return
		}
	}

	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "VárzeaPro", "/"),
	}

	templates.Render(w, r, "home", data)
}
