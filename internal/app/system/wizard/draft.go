// Package wizard owns the onboarding draft: the in-progress answers a
// PLAYER or TEAM account gives across the four setup steps, plus the
// wizard position. The draft lives in its own browser cookie (see store.go)
// and never touches the database; the server only persists the final
// submitted profile.
package wizard

import "github.com/varzeapro/varzeapro/internal/domain/models"

// Default values for a fresh player draft.
const (
	DefaultRadiusKm = 10
	MinRadiusKm     = 1
	MaxRadiusKm     = 50
	MaxPositions    = 2
)

// FileRef points at an uploaded file held for the duration of a request.
// Refs are deliberately excluded from the persisted draft (json:"-"): a
// reload mid-wizard loses the chosen photo/badge and the user picks it
// again. That limitation is part of the contract, not a bug.
type FileRef struct {
	Name string
	Size int64
}

// PlayerDraft holds the player wizard answers.
type PlayerDraft struct {
	Photo        *FileRef `json:"-"`
	PhotoPreview string   `json:"-"`

	Positions  []string `json:"positions"` // catalog IDs, insertion order, max 2
	City       string   `json:"city"`
	State      string   `json:"state"`
	RadiusKm   int      `json:"radius"`     // [1,50]
	SkillLevel int      `json:"skillLevel"` // 1–5, 0 = unset
	BirthDate  string   `json:"birthDate"`  // YYYY-MM-DD
	Name       string   `json:"name"`
}

// TeamDraft holds the team wizard answers.
type TeamDraft struct {
	Badge        *FileRef `json:"-"`
	BadgePreview string   `json:"-"`

	Name            string   `json:"name"`
	FieldLocation   string   `json:"fieldLocation"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	GameDays        []string `json:"gameDays"` // subset of the 7 weekday tokens
	GameTime        string   `json:"gameTime"`
	Modality        string   `json:"modality"`  // Futsal | Campo | Society, "" = unset
	SkillLevel      int      `json:"teamLevel"` // 1–5, 0 = unset
	ResponsibleName string   `json:"responsibleName"`
}

// Draft is the whole wizard session: chosen role, current step, and both
// role drafts. Only one draft is ever submitted; keeping both mirrors the
// ability to back out to the Welcome screen and switch tracks before a
// role is recorded.
type Draft struct {
	Role        string      `json:"role"` // PLAYER | TEAM | "" (unset)
	CurrentStep int         `json:"currentStep"`
	Player      PlayerDraft `json:"playerData"`
	Team        TeamDraft   `json:"teamData"`
}

// NewDraft returns a draft in its documented initial state.
func NewDraft() Draft {
	return Draft{
		CurrentStep: 1,
		Player:      PlayerDraft{RadiusKm: DefaultRadiusKm},
	}
}

// SetRole records the wizard track and rewinds to step 1.
func (d *Draft) SetRole(role string) {
	d.Role = role
	d.CurrentStep = 1
}

// TotalSteps returns the number of steps for the current role. Both roles
// currently have four steps; the role still decides which four.
func (d *Draft) TotalSteps() int {
	return TotalSteps(d.Role)
}

// SetStep positions the wizard, clamped to [1, TotalSteps]. Out-of-bounds
// requests never error.
func (d *Draft) SetStep(n int) {
	total := d.TotalSteps()
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	d.CurrentStep = n
}

// Next advances one step, clamped at the last step.
func (d *Draft) Next() { d.SetStep(d.CurrentStep + 1) }

// Prev moves back one step, clamped at the first step.
func (d *Draft) Prev() { d.SetStep(d.CurrentStep - 1) }

// Progress returns the completion percentage for progress bars.
func (d *Draft) Progress() float64 {
	return float64(d.CurrentStep) / float64(d.TotalSteps()) * 100
}

// Reset restores the draft to its initial empty state.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// PlayerPatch is a partial update to the player draft; nil fields are left
// untouched (shallow merge, no validation — the profile schema validates).
type PlayerPatch struct {
	Photo        **FileRef
	PhotoPreview *string
	Positions    *[]string
	City         *string
	State        *string
	RadiusKm     *int
	SkillLevel   *int
	BirthDate    *string
	Name         *string
}

// ApplyPlayerPatch shallow-merges p into the player draft.
func (d *Draft) ApplyPlayerPatch(p PlayerPatch) {
	if p.Photo != nil {
		d.Player.Photo = *p.Photo
	}
	if p.PhotoPreview != nil {
		d.Player.PhotoPreview = *p.PhotoPreview
	}
	if p.Positions != nil {
		d.Player.Positions = *p.Positions
	}
	if p.City != nil {
		d.Player.City = *p.City
	}
	if p.State != nil {
		d.Player.State = *p.State
	}
	if p.RadiusKm != nil {
		d.Player.RadiusKm = *p.RadiusKm
	}
	if p.SkillLevel != nil {
		d.Player.SkillLevel = *p.SkillLevel
	}
	if p.BirthDate != nil {
		d.Player.BirthDate = *p.BirthDate
	}
	if p.Name != nil {
		d.Player.Name = *p.Name
	}
}

// TeamPatch is a partial update to the team draft.
type TeamPatch struct {
	Badge           **FileRef
	BadgePreview    *string
	Name            *string
	FieldLocation   *string
	City            *string
	State           *string
	GameDays        *[]string
	GameTime        *string
	Modality        *string
	SkillLevel      *int
	ResponsibleName *string
}

// ApplyTeamPatch shallow-merges p into the team draft.
func (d *Draft) ApplyTeamPatch(p TeamPatch) {
	if p.Badge != nil {
		d.Team.Badge = *p.Badge
	}
	if p.BadgePreview != nil {
		d.Team.BadgePreview = *p.BadgePreview
	}
	if p.Name != nil {
		d.Team.Name = *p.Name
	}
	if p.FieldLocation != nil {
		d.Team.FieldLocation = *p.FieldLocation
	}
	if p.City != nil {
		d.Team.City = *p.City
	}
	if p.State != nil {
		d.Team.State = *p.State
	}
	if p.GameDays != nil {
		d.Team.GameDays = *p.GameDays
	}
	if p.GameTime != nil {
		d.Team.GameTime = *p.GameTime
	}
	if p.Modality != nil {
		d.Team.Modality = *p.Modality
	}
	if p.SkillLevel != nil {
		d.Team.SkillLevel = *p.SkillLevel
	}
	if p.ResponsibleName != nil {
		d.Team.ResponsibleName = *p.ResponsibleName
	}
}

// TogglePosition adds or removes a position ID from the player draft,
// preserving insertion order and capping the set at MaxPositions.
func (d *Draft) TogglePosition(id string) {
	for i, existing := range d.Player.Positions {
		if existing == id {
			d.Player.Positions = append(d.Player.Positions[:i], d.Player.Positions[i+1:]...)
			return
		}
	}
	if len(d.Player.Positions) < MaxPositions {
		d.Player.Positions = append(d.Player.Positions, id)
	}
}

// ToggleGameDay adds or removes a weekday token from the team draft.
// Unknown tokens are ignored.
func (d *Draft) ToggleGameDay(day string) {
	if !models.KnownGameDay(day) {
		return
	}
	for i, existing := range d.Team.GameDays {
		if existing == day {
			d.Team.GameDays = append(d.Team.GameDays[:i], d.Team.GameDays[i+1:]...)
			return
		}
	}
	d.Team.GameDays = append(d.Team.GameDays, day)
}
