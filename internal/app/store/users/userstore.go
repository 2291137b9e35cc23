package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/varzeapro/varzeapro/internal/app/system/auth"
	"github.com/varzeapro/varzeapro/internal/app/system/normalize"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrAlreadyOnboarded is returned when a role change is attempted after onboarding finished.
	ErrAlreadyOnboarded = errors.New("Onboarding already completed")
	errBadRole          = errors.New(`role must be "PLAYER"|"TEAM"|"ADMIN"`)
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new account after normalizing fields. New accounts start
// with no role and onboarding_completed=false; both are set later by the
// welcome flow.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Role = ""
	u.OnboardingCompleted = false

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetRole records the role chosen on the welcome screen. A role can be set
// or re-set freely while onboarding is open, but never after it completed;
// the role that finished onboarding is the role the account keeps.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	if !models.KnownRole(role) {
		return errBadRole
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "onboarding_completed": false},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the user vanished or onboarding already completed.
		// Distinguish so the caller can show the right message.
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
			return err
		}
		return ErrAlreadyOnboarded
	}
	return nil
}

// MarkOnboarded flips the onboarding flag. Callers run this inside the
// finalize transaction so the flag never flips without the profile row.
func (s *Store) MarkOnboarded(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"onboarding_completed": true, "updated_at": time.Now()}},
	)
	return err
}

// Fetcher adapts the store to auth.UserFetcher: it resolves the session's
// stored user ID into fresh user data on every request.
type Fetcher struct {
	users *Store
	log   *zap.Logger
}

func NewFetcher(users *Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{users: users, log: logger}
}

func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		f.log.Warn("session carries malformed user id", zap.String("user_id", userID))
		return nil
	}

	u, err := f.users.GetByID(ctx, oid)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			f.log.Warn("session user lookup failed", zap.Error(err))
		}
		return nil
	}

	return &auth.SessionUser{
		ID:                  u.ID.Hex(),
		Name:                u.FullName,
		Email:               u.Email,
		Role:                u.Role,
		OnboardingCompleted: u.OnboardingCompleted,
	}
}
