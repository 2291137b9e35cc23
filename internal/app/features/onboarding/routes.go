package onboarding

import (
	"github.com/go-chi/chi/v5"
	"github.com/varzeapro/varzeapro/internal/app/system/guard"
	"github.com/varzeapro/varzeapro/internal/domain/models"
)

// Routes mounts the setup wizard under /setup. Every route is an
// onboarding-only page: signed-in users may enter, onboarded users are
// bounced to their dashboard by the guard, and drafts on the wrong role
// track are bounced to Welcome by the step wrappers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(guard.RequireOnboarding)

	r.Route("/player", func(pr chi.Router) {
		pr.Get("/", h.ServePlayerSetupRoot)

		pr.Get("/steps/photo", h.Drafts.StepHandler(models.RolePlayer, 1, h.ServePlayerPhoto))
		pr.Post("/steps/photo", h.HandlePlayerPhotoPost)

		pr.Get("/steps/position", h.Drafts.StepHandler(models.RolePlayer, 2, h.ServePlayerPosition))
		pr.Post("/steps/position", h.HandlePlayerPositionPost)

		pr.Get("/steps/location", h.Drafts.StepHandler(models.RolePlayer, 3, h.ServePlayerLocation))
		pr.Post("/steps/location", h.HandlePlayerLocationPost)

		pr.Get("/steps/skill", h.Drafts.StepHandler(models.RolePlayer, 4, h.ServePlayerSkill))
		pr.Post("/steps/skill", h.HandlePlayerSkillPost)

		pr.Post("/finalize", h.HandlePlayerFinalize)
	})

	r.Route("/team", func(tr chi.Router) {
		tr.Get("/", h.ServeTeamSetupRoot)

		tr.Get("/steps/badge", h.Drafts.StepHandler(models.RoleTeam, 1, h.ServeTeamBadge))
		tr.Post("/steps/badge", h.HandleTeamBadgePost)

		tr.Get("/steps/location", h.Drafts.StepHandler(models.RoleTeam, 2, h.ServeTeamLocation))
		tr.Post("/steps/location", h.HandleTeamLocationPost)

		tr.Get("/steps/schedule", h.Drafts.StepHandler(models.RoleTeam, 3, h.ServeTeamSchedule))
		tr.Post("/steps/schedule", h.HandleTeamSchedulePost)

		tr.Get("/steps/level", h.Drafts.StepHandler(models.RoleTeam, 4, h.ServeTeamLevel))
		tr.Post("/steps/level", h.HandleTeamLevelPost)

		tr.Post("/finalize", h.HandleTeamFinalize)
	})

	return r
}
