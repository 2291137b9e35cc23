package playerstore

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
	db        *mongo.Database
	players   *mongo.Collection
	positions *mongo.Collection
	users     *userstore.Store
	log       *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:        db,
		players:   db.Collection("players"),
		positions: db.Collection("player_positions"),
		users:     userstore.New(db),
		log:       logger,
	}
}

// FindByUserID loads the player profile owned by the given account.
func (s *Store) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Player, error) {
	var p models.Player
	if err := s.players.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Positions returns the player's position links in stored order.
func (s *Store) Positions(ctx context.Context, playerID primitive.ObjectID) ([]models.PlayerPosition, error) {
	cur, err := s.positions.Find(ctx, bson.M{"player_id": playerID})
	if err != nil {
		return nil, err
	}
	var out []models.PlayerPosition
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FinalizeInput carries the already-validated profile fields the finalize
// action persists.
type FinalizeInput struct {
	Name        string
	BirthDate   time.Time
	City        string
	State       string
	RadiusKm    int
	SkillLevel  int
	PositionIDs []int
}

// Finalize completes player onboarding for userID in one transaction:
// the profile row is upserted, the position links are replaced wholesale,
// and the account's onboarding flag is set. Either all of it lands or
// none of it does. Running it again with new data simply replaces the
// profile and its positions.
func (s *Store) Finalize(ctx context.Context, userID primitive.ObjectID, in FinalizeInput) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		now := time.Now()

		set := bson.M{
			"name":       normalize.Name(in.Name),
			"birth_date": in.BirthDate,
			"city":       normalize.Name(in.City),
			"state":      normalize.StateCode(in.State),
			"available":  true,
			"updated_at": now,
		}
		// Zero means the field was never filled in. The collection schema
		// constrains these to [1,..] when present, so unset rather than
		// store a zero.
		unset := bson.M{}
		if in.RadiusKm > 0 {
			set["radius_km"] = in.RadiusKm
		} else {
			unset["radius_km"] = ""
		}
		if in.SkillLevel > 0 {
			set["skill_level"] = in.SkillLevel
		} else {
			unset["skill_level"] = ""
		}

		update := bson.M{"$set": set, "$setOnInsert": bson.M{"user_id": userID}}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		res := s.players.FindOneAndUpdate(ctx,
			bson.M{"user_id": userID},
			update,
			options.FindOneAndUpdate().
				SetUpsert(true).
				SetReturnDocument(options.After),
		)
		var p models.Player
		if err := res.Decode(&p); err != nil {
			return err
		}

		// Replace, not merge: the submitted set is the whole truth.
		if _, err := s.positions.DeleteMany(ctx, bson.M{"player_id": p.ID}); err != nil {
			return err
		}
		if len(in.PositionIDs) > 0 {
			docs := make([]any, 0, len(in.PositionIDs))
			for _, pid := range in.PositionIDs {
				docs = append(docs, models.PlayerPosition{PlayerID: p.ID, PositionID: pid})
			}
			if _, err := s.positions.InsertMany(ctx, docs); err != nil {
				return err
			}
		}

		return s.users.MarkOnboarded(ctx, userID)
	})
}
