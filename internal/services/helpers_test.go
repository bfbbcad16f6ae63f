package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/runebound-clan/competition-poller/consumer"
	"github.com/runebound-clan/competition-poller/internal/clients/ingestclient"
	"github.com/runebound-clan/competition-poller/internal/clients/womclient"
	"github.com/runebound-clan/competition-poller/internal/config"
	"github.com/runebound-clan/competition-poller/internal/db"
	"github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
)

var cycleTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T, trackedMetrics ...types.TrackedMetric) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Competition: config.CompetitionConfig{
			Metrics: trackedMetrics,
		},
		Poller: config.PollerConfig{
			EventStart:            "2025-03-01T00:00:00Z",
			InvocationTimeout:     time.Minute,
			SubmissionConcurrency: 3,
			DisableLease:          true,
		},
	}
	require.NoError(t, cfg.Poller.Validate())
	return cfg
}

type testDeps struct {
	db        db.DbInterface
	wom       womclient.WomInterface
	ingestion ingestclient.IngestionInterface
	publisher consumer.EventPublisher
}

func newTestService(t *testing.T, cfg *config.Config, deps testDeps) *Service {
	t.Helper()
	metrics.Register()

	srv := NewService(cfg, deps.db, deps.wom, deps.ingestion, deps.publisher)
	srv.now = func() time.Time { return cycleTime }
	t.Cleanup(srv.WaitBackground)
	return srv
}

// fakeLedger is an in-memory ledger, cycles can be chained against it
type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*model.LedgerRecord
	reads   int
	writes  int
	saveErr error
}

func newFakeLedger(records ...*model.LedgerRecord) *fakeLedger {
	l := &fakeLedger{records: make(map[string]*model.LedgerRecord)}
	for _, r := range records {
		l.records[r.Key] = r
	}
	return l
}

func (l *fakeLedger) Ping(context.Context) error { return nil }

func (l *fakeLedger) GetLedgerRecords(_ context.Context, keys []string) (map[string]*model.LedgerRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reads++

	result := make(map[string]*model.LedgerRecord)
	for _, key := range keys {
		if r, ok := l.records[key]; ok {
			copied := *r
			result[key] = &copied
		}
	}
	return result, nil
}

func (l *fakeLedger) GetLedgerRecord(_ context.Context, key string) (*model.LedgerRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records[key], nil
}

func (l *fakeLedger) SaveLedgerRecords(ctx context.Context, records []*model.LedgerRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.saveErr != nil {
		return l.saveErr
	}
	// same as the driver, a cancelled context fails the write
	if err := ctx.Err(); err != nil {
		return err
	}
	l.writes++
	for _, r := range records {
		copied := *r
		copied.UpdatedAt = cycleTime
		l.records[r.Key] = &copied
	}
	return nil
}

func (l *fakeLedger) AcquireCycleLease(context.Context, string, time.Duration) error { return nil }
func (l *fakeLedger) ReleaseCycleLease(context.Context, string) error                 { return nil }

func (l *fakeLedger) value(player string, metric types.TrackedMetric) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[types.LedgerKey(player, metric)]
	if !ok {
		return 0, false
	}
	return r.CumulativeValue, true
}

// fakeIngestion records submitted events and fails the ones selected by fail
type fakeIngestion struct {
	mu        sync.Mutex
	submitted []*types.CandidateEvent
	fail      func(*types.CandidateEvent) error
}

func (f *fakeIngestion) SubmitEvent(_ context.Context, event *types.CandidateEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, event)
	if f.fail != nil {
		return f.fail(event)
	}
	return nil
}

func (f *fakeIngestion) events() []*types.CandidateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.CandidateEvent(nil), f.submitted...)
}

func (f *fakeIngestion) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = nil
}
