// internal/app/features/onboarding/finalize.go
package onboarding

import (
	"context"
	"net/http"
	"time"

	playerstore "github.com/varzeapro/varzeapro/internal/app/store/players"
	teamstore "github.com/varzeapro/varzeapro/internal/app/store/teams"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/app/system/timeouts"
	"github.com/varzeapro/varzeapro/internal/app/system/wizard"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// defaultBirthDate backfills profiles submitted without a birth date.
var defaultBirthDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const finalizeFailedMsg = "Não foi possível concluir seu cadastro. Tente novamente."

/*─────────────────────────────────────────────────────────────────────────────*
| POST /setup/player/finalize                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandlePlayerFinalize(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{})
	if !ok {
		return
	}
	d, ok := h.playerDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/player")
		return
	}
	d.SetStep(4)

	// The submitting page carries the last step's field.
	if v := r.FormValue("skill_level"); v != "" {
		skill := formInt(r, "skill_level")
		d.ApplyPlayerPatch(wizard.PlayerPatch{SkillLevel: &skill})
	}

	profile := playerProfileFromDraft(d.Player)
	if profile.Name == "" {
		profile.Name = u.Name
	}

	if fe := profile.Validate(time.Now()); fe != nil {
		data := h.stepData(r, d, "Seu nível")
		data.Error = "Confira os campos destacados."
		data.Errors = fe
		h.renderStep(w, r, "player_skill", data)
		return
	}

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed session user id", err, "Sessão inválida. Entre novamente.", guard.SignInPath)
		return
	}

	born := defaultBirthDate
	if profile.BirthDate != "" {
		// Already validated by the schema.
		born, _ = time.Parse("2006-01-02", profile.BirthDate)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.Players.Finalize(ctx, uid, playerstore.FinalizeInput{
		Name:        profile.Name,
		BirthDate:   born,
		City:        profile.City,
		State:       profile.State,
		RadiusKm:    profile.RadiusKm,
		SkillLevel:  profile.SkillLevel,
		PositionIDs: profile.PositionIDs(),
	})
	if err != nil {
		h.Log.Error("player finalize failed", zap.Error(err), zap.String("user_id", u.ID))
		// The draft is untouched; the user can simply retry.
		data := h.stepData(r, d, "Seu nível")
		data.Error = finalizeFailedMsg
		h.renderStep(w, r, "player_skill", data)
		return
	}

	h.finishOnboarding(w, r, u.ID, "/player")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /setup/team/finalize                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleTeamFinalize(w http.ResponseWriter, r *http.Request) {
	u, ok := guard.Require(w, r, guard.Options{})
	if !ok {
		return
	}
	d, ok := h.teamDraft(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Dados inválidos.", "/setup/team")
		return
	}
	d.SetStep(4)

	if v := r.FormValue("team_level"); v != "" {
		skill := formInt(r, "team_level")
		d.ApplyTeamPatch(wizard.TeamPatch{SkillLevel: &skill})
	}
	if v := r.FormValue("responsible_name"); v != "" {
		responsible := cleanText(r.FormValue("responsible_name"))
		d.ApplyTeamPatch(wizard.TeamPatch{ResponsibleName: &responsible})
	}

	profile := teamProfileFromDraft(d.Team)
	if profile.ResponsibleName == "" {
		profile.ResponsibleName = u.Name
	}

	if fe := profile.Validate(); fe != nil {
		data := h.stepData(r, d, "Nível do time")
		data.Error = "Confira os campos destacados."
		data.Errors = fe
		h.renderStep(w, r, "team_level", data)
		return
	}

	uid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "malformed session user id", err, "Sessão inválida. Entre novamente.", guard.SignInPath)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err = h.Teams.Finalize(ctx, uid, teamstore.FinalizeInput{
		Name:            profile.Name,
		Modality:        profile.Modality,
		City:            profile.City,
		State:           profile.State,
		FieldLocation:   profile.FieldLocation,
		GameDays:        profile.GameDays,
		GameTime:        profile.GameTime,
		SkillLevel:      profile.SkillLevel,
		ResponsibleName: profile.ResponsibleName,
	})
	if err != nil {
		h.Log.Error("team finalize failed", zap.Error(err), zap.String("user_id", u.ID))
		data := h.stepData(r, d, "Nível do time")
		data.Error = finalizeFailedMsg
		h.renderStep(w, r, "team_level", data)
		return
	}

	h.finishOnboarding(w, r, u.ID, "/team")
}

// finishOnboarding runs the common post-commit work: the dashboard cache for
// this account is stale, the draft has served its purpose, and the user
// belongs on their dashboard.
func (h *Handler) finishOnboarding(w http.ResponseWriter, r *http.Request, userID, dashboard string) {
	h.Cache.Invalidate(userID)

	if err := h.Drafts.Clear(w, r); err != nil {
		h.Log.Warn("clear draft after finalize", zap.Error(err))
	}

	h.Log.Info("onboarding completed", zap.String("user_id", userID))
	http.Redirect(w, r, dashboard, http.StatusSeeOther)
}
