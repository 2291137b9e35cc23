// internal/app/features/teamdash/handler.go
package teamdash

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	teamstore "github.com/varzeapro/varzeapro/internal/app/store/teams"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/viewcache"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Teams  *teamstore.Store
	Cache  *viewcache.Cache
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(teams *teamstore.Store, cache *viewcache.Cache, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Teams:  teams,
		Cache:  cache,
		ErrLog: errLog,
		Log:    logger,
	}
}

// candidate is a placeholder roster suggestion until matchmaking ships.
type candidate struct {
	ID       string
	Name     string
	Position string
	Level    int
}

type dashboardVM struct {
	viewdata.BaseVM
	Team       *models.Team
	GameDays   string
	Candidates []candidate
	// Premium gate: free plans see a limited candidate list.
	ContactsLeft int
}

// freePlanContacts is the monthly contact allowance on the free plan.
const freePlanContacts = 3

/*─────────────────────────────────────────────────────────────────────────────*
| GET /team – team dashboard                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{Roles: []string{models.RoleTeam}})
	if !ok {
		return
	}

	if cached, hit := h.Cache.Get(u.ID); hit {
		if vm, castOK := cached.(dashboardVM); castOK {
			vm.BaseVM = viewdata.NewBaseVM(r, "Painel do time", "/")
			templates.Render(w, r, "team_dashboard", vm)
			return
		}
	}

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed session user id", err, "Sessão inválida. Entre novamente.", guard.SignInPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Teams.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("onboarded team has no profile row", zap.String("user_id", u.ID))
			http.Redirect(w, r, guard.WelcomePath, http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "load team profile", err, "Erro no servidor. Tente novamente.", "/")
		return
	}

	// Premium teams are not metered; the template hides the counter for them.
	contactsLeft := freePlanContacts - team.ContactsUsed
	if contactsLeft < 0 {
		contactsLeft = 0
	}

	vm := dashboardVM{
		Team:         team,
		GameDays:     strings.Join(team.GameDays, ", "),
		Candidates:   sampleCandidates(),
		ContactsLeft: contactsLeft,
	}
	h.Cache.Set(u.ID, vm)

	vm.BaseVM = viewdata.NewBaseVM(r, "Painel do time", "/")
	templates.Render(w, r, "team_dashboard", vm)
}

func sampleCandidates() []candidate {
	return []candidate{
		{ID: uuid.NewString(), Name: "Rafael S.", Position: "ATA", Level: 4},
		{ID: uuid.NewString(), Name: "Diego M.", Position: "GOL", Level: 3},
		{ID: uuid.NewString(), Name: "Luan P.", Position: "ZAG", Level: 3},
	}
}
