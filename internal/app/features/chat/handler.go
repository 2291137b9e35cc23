// internal/app/features/chat/handler.go
package chat

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// conversation is a placeholder until messaging ships.
type conversation struct {
	ID      string
	Name    string
	Preview string
	When    string
}

type chatVM struct {
	viewdata.BaseVM
	Conversations []conversation
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /chat – conversation list                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeChat(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{Roles: []string{models.RolePlayer, models.RoleTeam}})
	if !ok {
		return
	}

	back := guard.DashboardPath(u.Role)
	templates.Render(w, r, "chat", chatVM{
		BaseVM: viewdata.NewBaseVM(r, "Conversas", back),
		Conversations: []conversation{
			{ID: uuid.NewString(), Name: "Unidos da Vila", Preview: "Bora domingo?", When: "ontem"},
			{ID: uuid.NewString(), Name: "Rafael S.", Preview: "Fechado, tô dentro.", When: "2 dias"},
		},
	})
}
