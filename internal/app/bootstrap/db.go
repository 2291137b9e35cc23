// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	positionstore "github.com/varzeapro/varzeapro/internal/app/store/positions"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
//
// The client is pooled and shared; handlers get the database through DBDeps
// and scope their own per-request timeouts.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("MongoDB ping failed", zap.Error(err))
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the collection validators and indexes the app
// relies on and seeds the position catalog. All operations are
// idempotent, so this runs on every startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	for name, schema := range collectionSchemas {
		if err := ensureValidator(ctx, db, name, schema); err != nil {
			return fmt.Errorf("validator for %s: %w", name, err)
		}
	}

	// Sign-up uniqueness is enforced here, not just in application code.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}

	// One profile row per account for each role track.
	_, err = db.Collection("players").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("players user_id index: %w", err)
	}

	_, err = db.Collection("teams").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("teams user_id index: %w", err)
	}

	_, err = db.Collection("player_positions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "player_id", Value: 1}, {Key: "position_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("player_positions index: %w", err)
	}

	if err := positionstore.New(db).Seed(ctx); err != nil {
		return fmt.Errorf("seed positions: %w", err)
	}

	logger.Info("schema ensured", zap.String("database", appCfg.MongoDatabase))
	return nil
}

// collectionSchemas holds the $jsonSchema validator for each collection.
// The schemas check presence and shape of the fields the app always
// writes; optional fields are left to application-level validation.
var collectionSchemas = map[string]bson.M{
	"users": {
		"bsonType": "object",
		"required": []string{"full_name", "email", "onboarding_completed"},
		"properties": bson.M{
			"full_name":            bson.M{"bsonType": "string", "minLength": 1},
			"email":                bson.M{"bsonType": "string", "minLength": 3},
			"role":                 bson.M{"enum": []string{"PLAYER", "TEAM", "ADMIN"}},
			"onboarding_completed": bson.M{"bsonType": "bool"},
		},
	},
	"players": {
		"bsonType": "object",
		"required": []string{"user_id", "name", "city", "state"},
		"properties": bson.M{
			"user_id":     bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string", "minLength": 1},
			"city":        bson.M{"bsonType": "string", "minLength": 1},
			"state":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 2},
			"radius_km":   bson.M{"bsonType": "int", "minimum": 1, "maximum": 50},
			"skill_level": bson.M{"bsonType": "int", "minimum": 1, "maximum": 5},
		},
	},
	"teams": {
		"bsonType": "object",
		"required": []string{"user_id", "name", "modality", "city", "state"},
		"properties": bson.M{
			"user_id":     bson.M{"bsonType": "objectId"},
			"name":        bson.M{"bsonType": "string", "minLength": 1},
			"modality":    bson.M{"enum": []string{"Futsal", "Campo", "Society"}},
			"city":        bson.M{"bsonType": "string", "minLength": 1},
			"state":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 2},
			"skill_level": bson.M{"bsonType": "int", "minimum": 1, "maximum": 5},
		},
	},
	"player_positions": {
		"bsonType": "object",
		"required": []string{"player_id", "position_id"},
		"properties": bson.M{
			"player_id":   bson.M{"bsonType": "objectId"},
			"position_id": bson.M{"bsonType": "int", "minimum": 1},
		},
	},
}

// ensureValidator attaches schema to the named collection, creating the
// collection when it does not exist yet.
func ensureValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	validator := bson.M{"$jsonSchema": schema}

	err := db.CreateCollection(ctx, name,
		options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}

	var ce mongo.CommandError
	if !errors.As(err, &ce) || ce.Code != 48 { // 48 NamespaceExists
		return err
	}

	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
	}).Err()
}
