package positionstore

import (
	"context"

	"github.com/varzeapro/varzeapro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("positions")}
}

// Seed upserts the fixed position catalog. Safe to run on every boot.
func (s *Store) Seed(ctx context.Context) error {
	for _, p := range models.PositionCatalog {
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": p.ID},
			bson.M{"$set": bson.M{"name": p.Name, "short_name": p.ShortName}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// List returns the catalog ordered by ID.
func (s *Store) List(ctx context.Context) ([]models.Position, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.Position
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
