// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on users. A role is chosen once on the Welcome screen
// and stays fixed after onboarding completes.
const (
	RolePlayer = "PLAYER"
	RoleTeam   = "TEAM"
	RoleAdmin  = "ADMIN"
)

// KnownRole reports whether r is one of the roles this app recognizes.
func KnownRole(r string) bool {
	switch r {
	case RolePlayer, RoleTeam, RoleAdmin:
		return true
	}
	return false
}

// User is an account holder. Accounts start with no role; the onboarding
// wizard assigns PLAYER or TEAM and the finalize action flips
// OnboardingCompleted inside the same transaction that writes the profile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"password_hash,omitempty" json:"-"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"` // PLAYER | TEAM | ADMIN | "" (unset)

	OnboardingCompleted bool `bson:"onboarding_completed" json:"onboarding_completed"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
