// internal/app/features/onboarding/player_steps.go
package onboarding

import (
	"context"
	"net/http"
	"strings"

	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.uber.org/zap"
)

// playerDraft loads the draft for a player step POST and bounces drafts on
// the wrong track back to the Welcome screen, mirroring what StepHandler
// does for GETs.
func (h *Handler) playerDraft(w http.ResponseWriter, r *http.Request) (*wizard.Draft, bool) {
	d := h.Drafts.Load(r)
	if d.Role != models.RolePlayer {
		http.Redirect(w, r, guard.WelcomePath, http.StatusSeeOther)
		return nil, false
	}
	return &d, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /setup/player – resume at the current step                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePlayerSetupRoot(w http.ResponseWriter, r *http.Request) {
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	cfg, _ := wizard.ConfigFor(models.RolePlayer)
	http.Redirect(w, r, cfg.StepRoute(d.CurrentStep), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 1 – photo, name, birth date                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePlayerPhoto(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Sua foto")
	data.CanProceed = playerGate(1, d.Player)
	h.renderStep(w, r, "player_photo", data)
}

func (h *Handler) HandlePlayerPhotoPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Dados inválidos.", "/setup/player")
		return
	}
	d.SetStep(1)

	name := cleanText(r.FormValue("name"))
	birth := strings.TrimSpace(r.FormValue("birth_date"))
	patch := wizard.PlayerPatch{Name: &name, BirthDate: &birth}
	if ref := formFileRef(r, "photo"); ref != nil {
		patch.Photo = &ref
		preview := ref.Name
		patch.PhotoPreview = &preview
	}
	d.ApplyPlayerPatch(patch)

	nav := r.FormValue("nav")
	if nav == "next" && !playerGate(1, d.Player) {
		data := h.stepData(r, d, "Sua foto")
		data.Error = "Confira a data de nascimento antes de continuar."
		h.renderStep(w, r, "player_photo", data)
		return
	}
	h.navigate(w, r, d, nav)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 2 – positions (1–2 from the catalog)                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePlayerPosition(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Suas posições")
	data.CanProceed = playerGate(2, d.Player)
	data.Positions = h.positionCatalog(r.Context())
	h.renderStep(w, r, "player_position", data)
}

func (h *Handler) HandlePlayerPositionPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/player")
		return
	}
	d.SetStep(2)

	picked := r.Form["positions"]
	if len(picked) > wizard.MaxPositions {
		data := h.stepData(r, d, "Suas posições")
		data.Error = "Selecione no máximo duas posições."
		data.Positions = h.positionCatalog(r.Context())
		h.renderStep(w, r, "player_position", data)
		return
	}
	d.ApplyPlayerPatch(wizard.PlayerPatch{Positions: &picked})

	nav := r.FormValue("nav")
	if nav == "next" && !playerGate(2, d.Player) {
		data := h.stepData(r, d, "Suas posições")
		data.Error = "Selecione pelo menos uma posição."
		data.Positions = h.positionCatalog(r.Context())
		h.renderStep(w, r, "player_position", data)
		return
	}
	h.navigate(w, r, d, nav)
}

// positionCatalog reads the seeded catalog, falling back to the compiled-in
// table if the database is briefly unavailable. The page still renders.
func (h *Handler) positionCatalog(ctx context.Context) []models.Position {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	list, err := h.Positions.List(ctx)
	if err != nil || len(list) == 0 {
		if err != nil {
			h.Log.Warn("position catalog read failed", zap.Error(err))
		}
		return models.PositionCatalog
	}
	return list
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 3 – city, state, search radius                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePlayerLocation(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Onde você joga")
	data.CanProceed = playerGate(3, d.Player)
	h.renderStep(w, r, "player_location", data)
}

func (h *Handler) HandlePlayerLocationPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/player")
		return
	}
	d.SetStep(3)

	city := cleanText(r.FormValue("city"))
	state := strings.ToUpper(strings.TrimSpace(r.FormValue("state")))
	radius := formInt(r, "radius")
	d.ApplyPlayerPatch(wizard.PlayerPatch{City: &city, State: &state, RadiusKm: &radius})

	nav := r.FormValue("nav")
	if nav == "next" && !playerGate(3, d.Player) {
		data := h.stepData(r, d, "Onde você joga")
		data.Error = "Informe cidade, estado (sigla) e um raio entre 1 e 50 km."
		h.renderStep(w, r, "player_location", data)
		return
	}
	h.navigate(w, r, d, nav)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 4 – skill level + finalize                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServePlayerSkill(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Seu nível")
	data.CanProceed = playerGate(4, d.Player)
	h.renderStep(w, r, "player_skill", data)
}

func (h *Handler) HandlePlayerSkillPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/player")
		return
	}
	d.SetStep(4)

	skill := formInt(r, "skill_level")
	d.ApplyPlayerPatch(wizard.PlayerPatch{SkillLevel: &skill})

	h.navigate(w, r, d, r.FormValue("nav"))
}
