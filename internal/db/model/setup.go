package model

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/runebound-clan/competition-poller/internal/config"
)

const (
	LedgerCollection     = "competition_ledger"
	CycleLeaseCollection = "cycle_lease"

	setupTimeout = 30 * time.Second
)

type index struct {
	Indexes map[string]int
	Unique  bool
}

var collections = map[string][]index{
	LedgerCollection: {
		{Indexes: map[string]int{"metric": 1, "player_name": 1}},
		{Indexes: map[string]int{"updated_at": -1}},
	},
	CycleLeaseCollection: nil,
}

// Setup creates the collections and indexes the poller relies on. It is idempotent.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	exists := make(map[string]bool, len(existing))
	for _, name := range existing {
		exists[name] = true
	}

	for name, idxs := range collections {
		if !exists[name] {
			if err := database.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
		}

		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", name, err)
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	// keys are sorted for a stable index name across runs
	keys := bson.D{}
	for _, field := range slices.Sorted(maps.Keys(idx.Indexes)) {
		keys = append(keys, bson.E{Key: field, Value: idx.Indexes[field]})
	}

	model := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	_, err := database.Collection(collectionName).Indexes().CreateOne(ctx, model)
	return err
}
