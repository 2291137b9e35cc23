// internal/app/features/onboarding/team_steps.go
package onboarding

import (
	"net/http"
	"strings"

	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
)

// teamDraft is playerDraft's counterpart for team step POSTs.
func (h *Handler) teamDraft(w http.ResponseWriter, r *http.Request) (*wizard.Draft, bool) {
	d := h.Drafts.Load(r)
	if d.Role != models.RoleTeam {
		http.Redirect(w, r, guard.WelcomePath, http.StatusSeeOther)
		return nil, false
	}
	return &d, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /setup/team – resume at the current step                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeTeamSetupRoot(w http.ResponseWriter, r *http.Request) {
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	cfg, _ := wizard.ConfigFor(models.RoleTeam)
	http.Redirect(w, r, cfg.StepRoute(d.CurrentStep), http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 1 – badge and team name                                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeTeamBadge(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Escudo do time")
	data.CanProceed = teamGate(1, d.Team)
	h.renderStep(w, r, "team_badge", data)
}

func (h *Handler) HandleTeamBadgePost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse multipart form failed", err, "Dados inválidos.", "/setup/team")
		return
	}
	d.SetStep(1)

	name := cleanText(r.FormValue("name"))
	patch := wizard.TeamPatch{Name: &name}
	if ref := formFileRef(r, "badge"); ref != nil {
		patch.Badge = &ref
		preview := ref.Name
		patch.BadgePreview = &preview
	}
	d.ApplyTeamPatch(patch)

	nav := r.FormValue("nav")
	if nav == "next" && !teamGate(1, d.Team) {
		data := h.stepData(r, d, "Escudo do time")
		data.Error = "Dê um nome ao seu time antes de continuar."
		h.renderStep(w, r, "team_badge", data)
		return
	}
	h.navigate(w, r, d, nav)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 2 – city, state, home field                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeTeamLocation(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Onde o time joga")
	data.CanProceed = teamGate(2, d.Team)
	h.renderStep(w, r, "team_location", data)
}

func (h *Handler) HandleTeamLocationPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/team")
		return
	}
	d.SetStep(2)

	city := cleanText(r.FormValue("city"))
	state := strings.ToUpper(strings.TrimSpace(r.FormValue("state")))
	field := cleanText(r.FormValue("field_location"))
	d.ApplyTeamPatch(wizard.TeamPatch{City: &city, State: &state, FieldLocation: &field})

	nav := r.FormValue("nav")
	if nav == "next" && !teamGate(2, d.Team) {
		data := h.stepData(r, d, "Onde o time joga")
		data.Error = "Informe cidade e estado (sigla)."
		h.renderStep(w, r, "team_location", data)
		return
	}
	h.navigate(w, r, d, nav)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 3 – modality, game days, game time                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeTeamSchedule(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Agenda de jogos")
	data.CanProceed = teamGate(3, d.Team)
	data.Modalities = models.Modalities
	data.GameDays = models.GameDays
	h.renderStep(w, r, "team_schedule", data)
}

func (h *Handler) HandleTeamSchedulePost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/team")
		return
	}
	d.SetStep(3)

	modality := strings.TrimSpace(r.FormValue("modality"))
	gameTime := cleanText(r.FormValue("game_time"))
	days := r.Form["game_days"]
	d.ApplyTeamPatch(wizard.TeamPatch{
		Modality: &modality,
		GameTime: &gameTime,
		GameDays: &days,
	})

	nav := r.FormValue("nav")
	if nav == "next" && !teamGate(3, d.Team) {
		data := h.stepData(r, d, "Agenda de jogos")
		data.Error = "Escolha a modalidade (Futsal, Campo ou Society)."
		data.Modalities = models.Modalities
		data.GameDays = models.GameDays
		h.renderStep(w, r, "team_schedule", data)
		return
	}
	h.navigate(w, r, d, nav)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step 4 – level and responsible person + finalize                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeTeamLevel(w http.ResponseWriter, r *http.Request, d *wizard.Draft) {
	data := h.stepData(r, d, "Nível do time")
	data.CanProceed = teamGate(4, d.Team)
	h.renderStep(w, r, "team_level", data)
}

func (h *Handler) HandleTeamLevelPost(w http.ResponseWriter, r *http.Request) {
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/team")
		return
	}
	d.SetStep(4)

	skill := formInt(r, "team_level")
	responsible := cleanText(r.FormValue("responsible_name"))
	d.ApplyTeamPatch(wizard.TeamPatch{SkillLevel: &skill, ResponsibleName: &responsible})

	h.navigate(w, r, d, r.FormValue("nav"))
}
