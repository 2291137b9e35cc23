// Package profileval holds the one validation schema for onboarding
// profiles. The wizard step pages use it to decide whether "Próximo" is
// enabled, and the finalize actions re-run it server-side before any
// persistence — same rules, one place, no drift.
package profileval

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/varzeapro/varzeapro/internal/domain/models"
)

// MinAge is the minimum age, in years, at submission time.
const MinAge = 16

// Radius bounds in km.
const (
	MinRadiusKm = 1
	MaxRadiusKm = 50
)

// FieldErrors maps field names to user-facing messages. It satisfies
// error so finalize call sites can return it directly.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "dados inválidos"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// PlayerProfile is the payload the player finalize action accepts.
type PlayerProfile struct {
	Name       string
	BirthDate  string // YYYY-MM-DD, optional
	City       string
	State      string
	Positions  []string // catalog IDs as strings
	RadiusKm   int      // 0 = unset
	SkillLevel int      // 0 = unset
}

// Validate checks the payload against the shared schema. now anchors the
// age computation. A nil return means the payload is acceptable.
func (p PlayerProfile) Validate(now time.Time) FieldErrors {
	fe := FieldErrors{}

	if len(strings.TrimSpace(p.City)) < 2 {
		fe["cidade"] = "Cidade obrigatória"
	}
	if len(p.State) != 2 {
		fe["estado"] = "Use a sigla do estado (ex: SP)"
	}

	switch {
	case len(p.Positions) == 0:
		fe["posicoes"] = "Selecione pelo menos uma posição."
	case len(p.Positions) > 2:
		fe["posicoes"] = "Selecione no máximo duas posições."
	default:
		seen := map[string]bool{}
		for _, id := range p.Positions {
			n, err := strconv.Atoi(id)
			if err != nil {
				fe["posicoes"] = "Posição inválida."
				break
			}
			if _, ok := models.PositionByID(n); !ok {
				fe["posicoes"] = "Posição inválida."
				break
			}
			if seen[id] {
				fe["posicoes"] = "Posição repetida."
				break
			}
			seen[id] = true
		}
	}

	if p.RadiusKm != 0 && (p.RadiusKm < MinRadiusKm || p.RadiusKm > MaxRadiusKm) {
		fe["radius"] = "Raio de busca deve ficar entre 1 e 50 km."
	}
	if p.SkillLevel != 0 && (p.SkillLevel < 1 || p.SkillLevel > 5) {
		fe["skillLevel"] = "Nível deve ficar entre 1 e 5."
	}

	if p.BirthDate != "" {
		born, err := time.Parse("2006-01-02", p.BirthDate)
		if err != nil {
			fe["dataNascimento"] = "Data de nascimento inválida."
		} else if Age(born, now) < MinAge {
			fe["dataNascimento"] = "É preciso ter pelo menos 16 anos."
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// PositionIDs converts the validated string IDs to ints, preserving order.
func (p PlayerProfile) PositionIDs() []int {
	out := make([]int, 0, len(p.Positions))
	for _, id := range p.Positions {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// TeamProfile is the payload the team finalize action accepts.
type TeamProfile struct {
	Name            string
	Modality        string
	City            string
	State           string
	FieldLocation   string // optional free text
	GameDays        []string
	GameTime        string // optional free text
	SkillLevel      int    // 0 = unset
	ResponsibleName string
}

// Validate checks the team payload against the shared schema.
func (t TeamProfile) Validate() FieldErrors {
	fe := FieldErrors{}

	if len(strings.TrimSpace(t.Name)) < 2 {
		fe["nomeTime"] = "Nome do time obrigatório"
	}
	if !models.KnownModality(t.Modality) {
		fe["modalidade"] = "Escolha Futsal, Campo ou Society."
	}
	if len(strings.TrimSpace(t.City)) < 2 {
		fe["cidade"] = "Cidade obrigatória"
	}
	if len(t.State) != 2 {
		fe["estado"] = "Use a sigla do estado (ex: SP)"
	}
	if len(strings.TrimSpace(t.ResponsibleName)) < 2 {
		fe["nomeResponsavel"] = "Nome do responsável obrigatório"
	}

	for _, day := range t.GameDays {
		if !models.KnownGameDay(day) {
			fe["gameDays"] = "Dia de jogo inválido."
			break
		}
	}
	if t.SkillLevel != 0 && (t.SkillLevel < 1 || t.SkillLevel > 5) {
		fe["teamLevel"] = "Nível deve ficar entre 1 e 5."
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Age returns full years elapsed between born and now.
func Age(born, now time.Time) int {
	years := now.Year() - born.Year()
	// Birthday not reached yet this year.
	if now.Month() < born.Month() ||
		(now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years
}
