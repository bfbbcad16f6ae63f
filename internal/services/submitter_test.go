package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/runebound-clan/competition-poller/internal/clients/client"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
	"github.com/runebound-clan/competition-poller/tests/mocks"
)

func candidates(metric types.TrackedMetric, n int) []*types.CandidateEvent {
	events := make([]*types.CandidateEvent, 0, n)
	for i := 0; i < n; i++ {
		key := types.LedgerKey(fmt.Sprintf("player %d", i), metric)
		events = append(events, &types.CandidateEvent{
			LedgerKey:       key,
			PlayerName:      fmt.Sprintf("player %d", i),
			Metric:          metric,
			Delta:           int64(i + 1),
			CumulativeValue: int64(i + 1),
			SubmissionID:    types.SubmissionID(key, cycleTime),
			SourceTag:       types.SourceCompetition,
		})
	}
	return events
}

// instrumentedIngestion tracks how many submissions are in flight at once
type instrumentedIngestion struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
	delay       time.Duration

	mu    sync.Mutex
	order []string
}

func (i *instrumentedIngestion) SubmitEvent(_ context.Context, event *types.CandidateEvent) error {
	current := i.inFlight.Add(1)
	defer i.inFlight.Add(-1)
	i.calls.Add(1)

	for {
		seen := i.maxInFlight.Load()
		if current <= seen || i.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}

	i.mu.Lock()
	i.order = append(i.order, event.PlayerName)
	i.mu.Unlock()

	time.Sleep(i.delay)
	return nil
}

func TestSubmitBatch(t *testing.T) {
	metrics.Register()
	ctx := t.Context()

	t.Run("never more than the window in flight", func(t *testing.T) {
		ingestion := &instrumentedIngestion{delay: 10 * time.Millisecond}
		submitter := NewSubmitter(ingestion, 3)

		outcomes := submitter.SubmitBatch(ctx, candidates(types.MetricMining, 20))

		require.Len(t, outcomes, 20)
		assert.Equal(t, int32(20), ingestion.calls.Load())
		assert.LessOrEqual(t, ingestion.maxInFlight.Load(), int32(3))
		assert.Positive(t, ingestion.maxInFlight.Load())
	})
	t.Run("windows are processed one after another", func(t *testing.T) {
		ingestion := &instrumentedIngestion{delay: 5 * time.Millisecond}
		submitter := NewSubmitter(ingestion, 2)

		submitter.SubmitBatch(ctx, candidates(types.MetricMining, 6))

		// players of window k are all submitted before any player of window k+1
		windowOf := func(name string) int {
			var i int
			_, err := fmt.Sscanf(name, "player %d", &i)
			require.NoError(t, err)
			return i / 2
		}
		require.Len(t, ingestion.order, 6)
		for i := 1; i < len(ingestion.order); i++ {
			assert.LessOrEqual(t, windowOf(ingestion.order[i-1]), windowOf(ingestion.order[i]))
		}
	})
	t.Run("failures are isolated per event", func(t *testing.T) {
		events := candidates(types.MetricFishing, 7)
		failing := map[string]bool{events[1].SubmissionID: true, events[4].SubmissionID: true}

		ingestion := mocks.NewIngestionInterface(t)
		ingestion.On("SubmitEvent", mock.Anything, mock.Anything).Return(func(_ context.Context, ev *types.CandidateEvent) error {
			if failing[ev.SubmissionID] {
				return &client.Error{StatusCode: http.StatusBadRequest, Body: `{"error":"bad"}`}
			}
			return nil
		}).Times(7)

		outcomes := NewSubmitter(ingestion, 3).SubmitBatch(ctx, events)

		require.Len(t, outcomes, 7)
		var failed []string
		for _, o := range outcomes {
			if !o.Succeeded() {
				failed = append(failed, o.Event.SubmissionID)
				assert.True(t, client.IsStatus(o.Err, http.StatusBadRequest))
			}
		}
		assert.ElementsMatch(t, []string{events[1].SubmissionID, events[4].SubmissionID}, failed)
	})
	t.Run("panicking submission is a failed outcome", func(t *testing.T) {
		events := candidates(types.MetricHunter, 3)
		ingestion := &fakeIngestion{fail: func(ev *types.CandidateEvent) error {
			if ev.SubmissionID == events[0].SubmissionID {
				panic("boom")
			}
			return nil
		}}

		outcomes := NewSubmitter(ingestion, 3).SubmitBatch(ctx, events)

		require.Len(t, outcomes, 3)
		succeeded := 0
		for _, o := range outcomes {
			if o.Succeeded() {
				succeeded++
				continue
			}
			assert.Equal(t, events[0].SubmissionID, o.Event.SubmissionID)
			assert.Contains(t, o.Err.Error(), "panicked")
		}
		assert.Equal(t, 2, succeeded)
	})
	t.Run("transport errors", func(t *testing.T) {
		ingestion := &fakeIngestion{fail: func(*types.CandidateEvent) error {
			return errors.New("connection reset")
		}}

		outcomes := NewSubmitter(ingestion, 3).SubmitBatch(ctx, candidates(types.MetricMining, 4))
		for _, o := range outcomes {
			assert.False(t, o.Succeeded())
		}
	})
	t.Run("empty batch", func(t *testing.T) {
		assert.Empty(t, NewSubmitter(&fakeIngestion{}, 3).SubmitBatch(ctx, nil))
	})
	t.Run("default window", func(t *testing.T) {
		assert.Equal(t, defaultSubmissionWindow, NewSubmitter(&fakeIngestion{}, 0).window)
	})
}
