package teamstore

import (
	"context"
	"time"

	userstore "github.com/varzeapro/varzeapro/internal/app/store/users"
	"github.com/varzeapro/varzeapro/internal/app/system/normalize"
	"github.com/varzeapro/varzeapro/internal/app/system/txn"
	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Store struct {
	db    *mongo.Database
	teams *mongo.Collection
	users *userstore.Store
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:    db,
		teams: db.Collection("teams"),
		users: userstore.New(db),
		log:   logger,
	}
}

// FindByUserID loads the team profile owned by the given account.
func (s *Store) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Team, error) {
	var t models.Team
	if err := s.teams.FindOne(ctx, bson.M{"user_id": userID}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// FinalizeInput carries the already-validated team fields the finalize
// action persists.
type FinalizeInput struct {
	Name            string
	Modality        string
	City            string
	State           string
	FieldLocation   string
	GameDays        []string
	GameTime        string
	SkillLevel      int
	ResponsibleName string
}

// Finalize completes team onboarding for userID in one transaction: the
// team row is upserted and the account's onboarding flag is set. New teams
// start on the free plan with a zeroed contact counter; re-finalizing an
// existing team updates the profile fields and leaves the plan alone.
func (s *Store) Finalize(ctx context.Context, userID primitive.ObjectID, in FinalizeInput) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		now := time.Now()

		set := bson.M{
			"name":             normalize.Name(in.Name),
			"modality":         in.Modality,
			"city":             normalize.Name(in.City),
			"state":            normalize.StateCode(in.State),
			"field_location":   normalize.Name(in.FieldLocation),
			"game_days":        in.GameDays,
			"game_time":        in.GameTime,
			"responsible_name": normalize.Name(in.ResponsibleName),
			"updated_at":       now,
		}
		// Zero means the level was never chosen. The collection schema
		// constrains skill_level to [1,5] when present, so unset rather
		// than store a zero.
		update := bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"user_id":       userID,
				"plan":          models.PlanFree,
				"contacts_used": 0,
			},
		}
		if in.SkillLevel > 0 {
			set["skill_level"] = in.SkillLevel
		} else {
			update["$unset"] = bson.M{"skill_level": ""}
		}

		_, err := s.teams.UpdateOne(ctx,
			bson.M{"user_id": userID},
			update,
			// Upsert keeps the action idempotent for retried submissions.
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}

		return s.users.MarkOnboarded(ctx, userID)
	})
}
