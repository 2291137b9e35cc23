// internal/domain/models/player.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Player is the public profile a PLAYER account builds during onboarding.
// Position links live in the player_positions collection, replaced as a set
// on every finalize.
type Player struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Name      string    `bson:"name" json:"name"`
	BirthDate time.Time `bson:"birth_date" json:"birth_date"`
	City      string    `bson:"city" json:"city"`
	State     string    `bson:"state" json:"state"` // 2-letter code, uppercase

	// Matchmaking preferences collected by the wizard.
	RadiusKm   int `bson:"radius_km,omitempty" json:"radius_km,omitempty"`     // [1,50]
	SkillLevel int `bson:"skill_level,omitempty" json:"skill_level,omitempty"` // [1,5]

	Available bool `bson:"available" json:"available"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PlayerPosition links a player to one catalog position.
type PlayerPosition struct {
	PlayerID   primitive.ObjectID `bson:"player_id" json:"player_id"`
	PositionID int                `bson:"position_id" json:"position_id"`
}
