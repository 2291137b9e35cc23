// internal/app/features/playerdash/handler.go
package playerdash

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	playerstore "github.com/varzeapro/varzeapro/internal/app/store/players"
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
	Players *playerstore.Store
	Cache   *viewcache.Cache
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(players *playerstore.Store, cache *viewcache.Cache, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Players: players,
		Cache:   cache,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// matchInvite is a placeholder for the matchmaking feed; real invites come
// later, the dashboard layout is settled now.
type matchInvite struct {
	ID       string
	TeamName string
	Venue    string
	Kickoff  string
}

type seasonStats struct {
	Games   int
	Goals   int
	Assists int
}

type dashboardVM struct {
	viewdata.BaseVM
	Player    *models.Player
	Positions []models.Position
	NextGames []matchInvite
	Stats     seasonStats
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /player – player dashboard                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{Roles: []string{models.RolePlayer}})
	if !ok {
		return
	}

	if cached, hit := h.Cache.Get(u.ID); hit {
		if vm, castOK := cached.(dashboardVM); castOK {
			vm.BaseVM = viewdata.NewBaseVM(r, "Meu painel", "/")
			templates.Render(w, r, "player_dashboard", vm)
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

	player, err := h.Players.FindByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Onboarded flag without a profile row should not happen; the
			// welcome flow can heal it.
			h.Log.Warn("onboarded player has no profile row", zap.String("user_id", u.ID))
			http.Redirect(w, r, guard.WelcomePath, http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "load player profile", err, "Erro no servidor. Tente novamente.", "/")
		return
	}

	var positions []models.Position
	if links, err := h.Players.Positions(ctx, player.ID); err == nil {
		for _, link := range links {
			if p, known := models.PositionByID(link.PositionID); known {
				positions = append(positions, p)
			}
		}
	} else {
		h.Log.Warn("load player positions", zap.Error(err), zap.String("user_id", u.ID))
	}

	vm := dashboardVM{
		Player:    player,
		Positions: positions,
		NextGames: sampleInvites(player.City),
		Stats:     seasonStats{},
	}
	h.Cache.Set(u.ID, vm)

	vm.BaseVM = viewdata.NewBaseVM(r, "Meu painel", "/")
	templates.Render(w, r, "player_dashboard", vm)
}

// sampleInvites fills the feed until matchmaking ships.
func sampleInvites(city string) []matchInvite {
	if city == "" {
		city = "sua cidade"
	}
	return []matchInvite{
		{ID: uuid.NewString(), TeamName: "Unidos da Vila", Venue: "Campo do Parque · " + city, Kickoff: "Domingo, 9h"},
		{ID: uuid.NewString(), TeamName: "Galáticos FC", Venue: "Society Estrela · " + city, Kickoff: "Quarta, 20h"},
	}
}
