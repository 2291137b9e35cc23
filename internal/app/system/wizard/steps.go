// internal/app/system/wizard/steps.go
package wizard

import (
	"net/http"

	"github.com/varzeapro/varzeapro/internal/domain/models"
)

// Step is one wizard page: a display name plus the route that owns it.
// The table below is the single source of truth for the step⇄URL pairing;
// StepHandler enforces it so individual pages never have to.
type Step struct {
	Name  string
	Route string
}

// RoleConfig bundles everything that used to be decided by scattered
// role conditionals: the step list, routes, and presentation accents.
type RoleConfig struct {
	Role      string
	Label     string
	Accent    string
	SetupRoot string
	Dashboard string
	Steps     []Step
}

var playerConfig = RoleConfig{
	Role:      models.RolePlayer,
	Label:     "Jogador",
	Accent:    "blue",
	SetupRoot: "/setup/player",
	Dashboard: "/player",
	Steps: []Step{
		{Name: "Foto", Route: "/setup/player/steps/photo"},
		{Name: "Posição", Route: "/setup/player/steps/position"},
		{Name: "Localização", Route: "/setup/player/steps/location"},
		{Name: "Nível", Route: "/setup/player/steps/skill"},
	},
}

var teamConfig = RoleConfig{
	Role:      models.RoleTeam,
	Label:     "Time",
	Accent:    "green",
	SetupRoot: "/setup/team",
	Dashboard: "/team",
	Steps: []Step{
		{Name: "Escudo", Route: "/setup/team/steps/badge"},
		{Name: "Localização", Route: "/setup/team/steps/location"},
		{Name: "Agenda", Route: "/setup/team/steps/schedule"},
		{Name: "Nível", Route: "/setup/team/steps/level"},
	},
}

// ConfigFor returns the role's wizard configuration.
func ConfigFor(role string) (RoleConfig, bool) {
	switch role {
	case models.RolePlayer:
		return playerConfig, true
	case models.RoleTeam:
		return teamConfig, true
	}
	return RoleConfig{}, false
}

// TotalSteps returns the step count for a role. Unknown roles (including
// the unset role) report the player count so progress math never divides
// by zero before a role is chosen.
func TotalSteps(role string) int {
	if cfg, ok := ConfigFor(role); ok {
		return len(cfg.Steps)
	}
	return len(playerConfig.Steps)
}

// StepForRoute returns the 1-based step index that owns route.
func (c RoleConfig) StepForRoute(route string) (int, bool) {
	for i, s := range c.Steps {
		if s.Route == route {
			return i + 1, true
		}
	}
	return 0, false
}

// StepRoute returns the route for the 1-based step n, clamped into range.
func (c RoleConfig) StepRoute(n int) string {
	if n < 1 {
		n = 1
	}
	if n > len(c.Steps) {
		n = len(c.Steps)
	}
	return c.Steps[n-1].Route
}

// StepHandler wraps a wizard step page. Before the page runs it loads the
// draft, verifies the draft's role matches the page's role (else the
// caller is sent back to Welcome), and pins CurrentStep to the page's own
// index. The loaded draft is handed to the page handler so it is decoded
// only once per request.
func (st *Store) StepHandler(role string, step int, page func(http.ResponseWriter, *http.Request, *Draft)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := st.Load(r)
		if draft.Role != role {
			http.Redirect(w, r, "/welcome", http.StatusSeeOther)
			return
		}
		draft.SetStep(step)
		page(w, r, &draft)
	}
}
