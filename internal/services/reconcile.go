package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
)

const (
	skipReasonUnchanged    = "unchanged"
	skipReasonRegression   = "regression"
	skipReasonKeyCollision = "key_collision"
)

type reconcileResult struct {
	candidates  []*types.CandidateEvent
	unchanged   int
	regressions int
	collisions  int
}

// reconcileMetric reads the ledger for every participant in a single round trip and
// turns positive progress since the last confirmed submission into candidate events
func (s *Service) reconcileMetric(
	ctx context.Context,
	metric types.TrackedMetric,
	snapshots []types.ParticipantSnapshot,
	cycleTime time.Time,
) (*reconcileResult, error) {
	keys := make([]string, 0, len(snapshots))
	for _, snapshot := range snapshots {
		keys = append(keys, types.LedgerKey(snapshot.PlayerName, metric))
	}

	ledger, err := s.db.GetLedgerRecords(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for metric %s: %w", metric, err)
	}

	result := reconcile(ctx, metric, snapshots, ledger, cycleTime)

	metrics.RecordCandidateEvents(metric.String(), len(result.candidates))
	metrics.RecordSkippedDeltas(metric.String(), skipReasonUnchanged, result.unchanged)
	metrics.RecordSkippedDeltas(metric.String(), skipReasonRegression, result.regressions)
	metrics.RecordSkippedDeltas(metric.String(), skipReasonKeyCollision, result.collisions)

	return result, nil
}

// reconcile computes delta = fetched - previous for each participant, previous being 0 for
// players missing from the ledger. Only positive deltas become candidates, zero and negative
// ones are skipped. Within one batch the first participant owning a ledger key wins.
func reconcile(
	ctx context.Context,
	metric types.TrackedMetric,
	snapshots []types.ParticipantSnapshot,
	ledger map[string]*model.LedgerRecord,
	cycleTime time.Time,
) *reconcileResult {
	result := &reconcileResult{}
	claimed := make(map[string]string, len(snapshots))

	for _, snapshot := range snapshots {
		key := types.LedgerKey(snapshot.PlayerName, metric)
		if owner, ok := claimed[key]; ok {
			log.Ctx(ctx).Warn().
				Str("metric", metric.String()).
				Str("ledger_key", key).
				Str("player", snapshot.PlayerName).
				Str("key_owner", owner).
				Msg("player name maps to a ledger key already used in this cycle, skipping")
			result.collisions++
			continue
		}
		claimed[key] = snapshot.PlayerName

		var previous int64
		if record, ok := ledger[key]; ok && record != nil {
			previous = record.CumulativeValue
		}

		delta := snapshot.CumulativeValue - previous
		switch {
		case delta == 0:
			result.unchanged++
			continue
		case delta < 0:
			log.Ctx(ctx).Debug().
				Str("metric", metric.String()).
				Str("player", snapshot.PlayerName).
				Int64("previous", previous).
				Int64("fetched", snapshot.CumulativeValue).
				Msg("cumulative value regressed, skipping")
			result.regressions++
			continue
		}

		result.candidates = append(result.candidates, &types.CandidateEvent{
			LedgerKey:       key,
			PlayerName:      snapshot.PlayerName,
			Metric:          metric,
			Delta:           delta,
			CumulativeValue: snapshot.CumulativeValue,
			SubmissionID:    types.SubmissionID(key, cycleTime),
			SourceTag:       types.SourceCompetition,
		})
	}

	return result
}
