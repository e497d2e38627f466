package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kyolabs/honorary-fee-crank/internal/config"
)

const (
	HonoraryPositionCollection = "honorary_positions"
	PolicyCollection           = "policies"
	ProgressCollection         = "distribution_progress"
	TransferCollection         = "transfer_instructions"
)

// mongo error code for NamespaceExists
const namespaceExistsCode = 48

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	HonoraryPositionCollection: {
		{Keys: bson.D{{Key: "pool_id", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	},
	PolicyCollection:   nil,
	ProgressCollection: nil,
	TransferCollection: {
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}, {Key: "ordinal", Value: 1}}},
		{Keys: bson.D{{Key: "pool_id", Value: 1}, {Key: "epoch", Value: 1}}},
		{Keys: bson.D{{Key: "pool_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "status", Value: 1}}},
	},
}

// Setup creates the collections and their indexes. It is safe to run on every start.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	clientOpts := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for collection, indexes := range collections {
		if err := createCollection(ctx, database, collection); err != nil {
			return err
		}
		for _, idx := range indexes {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and indexes created successfully")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	err := database.CreateCollection(ctx, collectionName)
	if err == nil {
		log.Ctx(ctx).Debug().Str("collection", collectionName).Msg("Collection created")
		return nil
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == namespaceExistsCode {
		return nil
	}
	return fmt.Errorf("failed to create collection %s: %w", collectionName, err)
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	indexModel := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	return nil
}
