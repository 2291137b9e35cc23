// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Modalities a team can register under.
const (
	ModalityFutsal  = "Futsal"
	ModalityCampo   = "Campo"
	ModalitySociety = "Society"
)

// Modalities lists the valid modality values in display order.
var Modalities = []string{ModalityFutsal, ModalityCampo, ModalitySociety}

// KnownModality reports whether m is a valid modality.
func KnownModality(m string) bool {
	for _, known := range Modalities {
		if m == known {
			return true
		}
	}
	return false
}

// GameDays lists the seven weekday tokens a team may pick game days from.
var GameDays = []string{
	"segunda", "terca", "quarta", "quinta", "sexta", "sabado", "domingo",
}

// KnownGameDay reports whether d is one of the weekday tokens.
func KnownGameDay(d string) bool {
	for _, known := range GameDays {
		if d == known {
			return true
		}
	}
	return false
}

// Team plan tiers (freemium).
const (
	PlanFree    = "FREE"
	PlanPremium = "PREMIUM"
)

// Team is the profile a TEAM account builds during onboarding.
type Team struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Name            string   `bson:"name" json:"name"`
	Modality        string   `bson:"modality" json:"modality"` // Futsal | Campo | Society
	City            string   `bson:"city" json:"city"`
	State           string   `bson:"state" json:"state"`
	FieldLocation   string   `bson:"field_location,omitempty" json:"field_location,omitempty"`
	GameDays        []string `bson:"game_days,omitempty" json:"game_days,omitempty"`
	GameTime        string   `bson:"game_time,omitempty" json:"game_time,omitempty"`
	SkillLevel      int      `bson:"skill_level,omitempty" json:"skill_level,omitempty"` // [1,5]
	ResponsibleName string   `bson:"responsible_name" json:"responsible_name"`

	// Freemium accounting.
	Plan          string     `bson:"plan" json:"plan"`
	ContactsUsed  int        `bson:"contacts_used" json:"contacts_used"`
	ContactsReset *time.Time `bson:"contacts_reset,omitempty" json:"contacts_reset,omitempty"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
