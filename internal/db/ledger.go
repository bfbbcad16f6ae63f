package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/utils"
)

// MaxLedgerBatchSize is the upper bound of records written in one atomic chunk
const MaxLedgerBatchSize = 500

func (db *Database) GetLedgerRecords(ctx context.Context, keys []string) (map[string]*model.LedgerRecord, error) {
	result := make(map[string]*model.LedgerRecord, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	filter := bson.M{"_id": bson.M{"$in": keys}}
	cursor, err := db.collection(model.LedgerCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var record model.LedgerRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		result[record.Key] = &record
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (db *Database) GetLedgerRecord(ctx context.Context, key string) (*model.LedgerRecord, error) {
	var record model.LedgerRecord
	err := db.collection(model.LedgerCollection).
		FindOne(ctx, bson.M{"_id": key}).
		Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     key,
				Message: "ledger record not found by key",
			}
		}
		return nil, err
	}

	return &record, nil
}

func (db *Database) SaveLedgerRecords(ctx context.Context, records []*model.LedgerRecord) error {
	return writeInChunks(ctx, records, MaxLedgerBatchSize, db.saveLedgerChunk)
}

// saveLedgerChunk upserts one chunk inside a transaction, either all records are stored or none
func (db *Database) saveLedgerChunk(ctx context.Context, records []*model.LedgerRecord) error {
	now := time.Now().UTC()

	writes := make([]mongo.WriteModel, 0, len(records))
	for _, r := range records {
		doc := *r
		doc.UpdatedAt = now
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.Key}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return db.collection(model.LedgerCollection).
			BulkWrite(sessCtx, writes, options.BulkWrite().SetOrdered(true))
	})
	return err
}

// writeInChunks calls write sequentially for every chunk of at most size records.
// A failed chunk doesn't stop the following ones, all failures are returned joined.
func writeInChunks(
	ctx context.Context,
	records []*model.LedgerRecord,
	size int,
	write func(context.Context, []*model.LedgerRecord) error,
) error {
	var errs []error
	for i, chunk := range utils.Chunk(records, size) {
		if err := write(ctx, chunk); err != nil {
			log.Ctx(ctx).Error().Err(err).
				Int("chunk", i).
				Int("size", len(chunk)).
				Msg("failed to write ledger chunk")
			errs = append(errs, fmt.Errorf("ledger chunk %d (%d records): %w", i, len(chunk), err))
		}
	}
	return errors.Join(errs...)
}
