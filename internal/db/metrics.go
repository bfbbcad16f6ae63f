package db

import (
	"context"
	"time"

	"github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetLedgerRecords(ctx context.Context, keys []string) (result map[string]*model.LedgerRecord, err error) {
	//nolint:errcheck
	d.run("GetLedgerRecords", func() error {
		result, err = d.db.GetLedgerRecords(ctx, keys)
		return err
	})
	return
}

func (d *DbWithMetrics) GetLedgerRecord(ctx context.Context, key string) (result *model.LedgerRecord, err error) {
	//nolint:errcheck
	d.run("GetLedgerRecord", func() error {
		result, err = d.db.GetLedgerRecord(ctx, key)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveLedgerRecords(ctx context.Context, records []*model.LedgerRecord) error {
	return d.run("SaveLedgerRecords", func() error {
		return d.db.SaveLedgerRecords(ctx, records)
	})
}

func (d *DbWithMetrics) AcquireCycleLease(ctx context.Context, owner string, ttl time.Duration) error {
	return d.run("AcquireCycleLease", func() error {
		return d.db.AcquireCycleLease(ctx, owner, ttl)
	})
}

func (d *DbWithMetrics) ReleaseCycleLease(ctx context.Context, owner string) error {
	return d.run("ReleaseCycleLease", func() error {
		return d.db.ReleaseCycleLease(ctx, owner)
	})
}

// run records latency of f; a held lease is an expected outcome and is not counted as a failure
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil && !IsLeaseHeldError(err))
	return err
}
