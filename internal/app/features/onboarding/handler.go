// internal/app/features/onboarding/handler.go
//
// The setup wizard: four pages per role, each backed by the cookie draft,
// ending in a finalize action that persists the profile transactionally.
package onboarding

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/varzeapro/varzeapro/internal/app/features/errors"
	playerstore "github.com/varzeapro/varzeapro/internal/app/store/players"
	positionstore "github.com/varzeapro/varzeapro/internal/app/store/positions"
	teamstore "github.com/varzeapro/varzeapro/internal/app/store/teams"
	"github.com/varzeapro/varzeapro/internal/app/system/htmlsanitize"
	"github.com/varzeapro/varzeapro/internal/app/system/profileval"
	"github.com/varzeapro/varzeapro/internal/app/system/viewcache"
	"github.com/varzeapro/varzeapro/internal/app/system/viewdata"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.uber.org/zap"
)

// maxUploadBytes bounds photo/badge uploads (8 MB).
const maxUploadBytes = 8 << 20

type Handler struct {
	Players   *playerstore.Store
	Teams     *teamstore.Store
	Positions *positionstore.Store
	Drafts    *wizard.Store
	Cache     *viewcache.Cache
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(
	players *playerstore.Store,
	teams *teamstore.Store,
	positions *positionstore.Store,
	drafts *wizard.Store,
	cache *viewcache.Cache,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Players:   players,
		Teams:     teams,
		Positions: positions,
		Drafts:    drafts,
		Cache:     cache,
		ErrLog:    errLog,
		Log:       logger,
	}
}

// stepData is the shared view model for every wizard step page.
type stepData struct {
	viewdata.BaseVM
	Cfg        wizard.RoleConfig
	Step       int
	Total      int
	Progress   float64
	CanProceed bool
	Error      string
	Errors     profileval.FieldErrors
	Draft      *wizard.Draft
	Positions  []models.Position
	Modalities []string
	GameDays   []string
}

func (h *Handler) stepData(r *http.Request, d *wizard.Draft, title string) stepData {
	cfg, _ := wizard.ConfigFor(d.Role)
	return stepData{
		BaseVM:   viewdata.NewBaseVM(r, title, cfg.SetupRoot),
		Cfg:      cfg,
		Step:     d.CurrentStep,
		Total:    d.TotalSteps(),
		Progress: d.Progress(),
		Draft:    d,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Step gates — the same schema the finalize action enforces, sliced per step |
*─────────────────────────────────────────────────────────────────────────────*/

func playerProfileFromDraft(p wizard.PlayerDraft) profileval.PlayerProfile {
	return profileval.PlayerProfile{
		Name:       p.Name,
		BirthDate:  p.BirthDate,
		City:       p.City,
		State:      strings.ToUpper(p.State),
		Positions:  p.Positions,
		RadiusKm:   p.RadiusKm,
		SkillLevel: p.SkillLevel,
	}
}

func teamProfileFromDraft(t wizard.TeamDraft) profileval.TeamProfile {
	return profileval.TeamProfile{
		Name:            t.Name,
		Modality:        t.Modality,
		City:            t.City,
		State:           strings.ToUpper(t.State),
		FieldLocation:   t.FieldLocation,
		GameDays:        t.GameDays,
		GameTime:        t.GameTime,
		SkillLevel:      t.SkillLevel,
		ResponsibleName: t.ResponsibleName,
	}
}

// playerGate reports whether the player step has what it needs for "next".
func playerGate(step int, p wizard.PlayerDraft) bool {
	fe := playerProfileFromDraft(p).Validate(time.Now())
	switch step {
	case 1:
		// Photo is optional; name and birth date just have to be valid
		// when present.
		return fe["dataNascimento"] == ""
	case 2:
		return fe["posicoes"] == ""
	case 3:
		return fe["cidade"] == "" && fe["estado"] == "" && fe["radius"] == ""
	case 4:
		return p.SkillLevel >= 1 && p.SkillLevel <= 5
	}
	return false
}

// teamGate reports whether the team step has what it needs for "next".
func teamGate(step int, t wizard.TeamDraft) bool {
	fe := teamProfileFromDraft(t).Validate()
	switch step {
	case 1:
		// Badge is optional; the team needs a name.
		return fe["nomeTime"] == ""
	case 2:
		return fe["cidade"] == "" && fe["estado"] == ""
	case 3:
		return fe["modalidade"] == "" && fe["gameDays"] == ""
	case 4:
		return t.SkillLevel >= 1 && t.SkillLevel <= 5 && fe["nomeResponsavel"] == ""
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| Shared form helpers                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// cleanText strips markup from a free-text form field.
func cleanText(s string) string {
	return strings.TrimSpace(htmlsanitize.PlainText(s))
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(field)))
	return n
}

// formFileRef extracts an uploaded file's handle, if one was sent. The bytes
// themselves stay with the request; only name and size reach the draft, and
// neither survives the cookie round-trip.
func formFileRef(r *http.Request, field string) *wizard.FileRef {
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil
	}
	defer f.Close()
	return &wizard.FileRef{Name: header.Filename, Size: header.Size}
}

// navigate moves the draft per the pressed button, saves it, and redirects
// to the step that now owns the wizard.
func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, d *wizard.Draft, nav string) {
	cfg, _ := wizard.ConfigFor(d.Role)
	switch nav {
	case "next":
		d.Next()
	case "prev":
		d.Prev()
	}
	if err := h.Drafts.Save(w, r, *d); err != nil {
		h.ErrLog.LogServerError(w, r, "save draft failed", err, "Não foi possível salvar seu progresso.", cfg.SetupRoot)
		return
	}
	http.Redirect(w, r, cfg.StepRoute(d.CurrentStep), http.StatusSeeOther)
}

func (h *Handler) renderStep(w http.ResponseWriter, r *http.Request, name string, data stepData) {
	templates.Render(w, r, name, data)
}
