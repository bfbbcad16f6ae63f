package db

import (
	"context"
	"time"

	"github.com/runebound-clan/competition-poller/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// GetLedgerRecords returns the stored records for the given keys in one round trip.
	// Keys without a record are absent from the result.
	GetLedgerRecords(ctx context.Context, keys []string) (map[string]*model.LedgerRecord, error)
	GetLedgerRecord(ctx context.Context, key string) (*model.LedgerRecord, error)
	// SaveLedgerRecords upserts the records in chunks of at most MaxLedgerBatchSize,
	// every chunk is applied atomically
	SaveLedgerRecords(ctx context.Context, records []*model.LedgerRecord) error
	AcquireCycleLease(ctx context.Context, owner string, ttl time.Duration) error
	ReleaseCycleLease(ctx context.Context, owner string) error
}
