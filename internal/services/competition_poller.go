package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/runebound-clan/competition-poller/internal/db"
	"github.com/runebound-clan/competition-poller/internal/db/model"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/observability/tracing"
	"github.com/runebound-clan/competition-poller/internal/queue"
	"github.com/runebound-clan/competition-poller/internal/types"
	"github.com/runebound-clan/competition-poller/internal/utils/poller"
)

const (
	competitionPollerType = "competition"

	cycleSkippedNotStarted = "not_started"
	cycleSkippedLeaseHeld  = "lease_held"

	leaseReleaseTimeout = 5 * time.Second
	// confirmed deltas are persisted even when the cycle is cancelled mid-way
	ledgerPersistTimeout = 30 * time.Second
)

// StartCompetitionPoller runs a cycle right away and then on every poller interval.
// Callers stop the returned poller and Wait for it before WaitBackground.
func (s *Service) StartCompetitionPoller(ctx context.Context) *poller.Poller {
	competitionPoller := poller.NewPoller(
		s.cfg.Poller.Interval,
		s.cfg.Poller.InvocationTimeout,
		metrics.RecordPollerDuration(competitionPollerType, s.PollCompetition),
	)
	go competitionPoller.Start(ctx, true)
	return competitionPoller
}

// RunOnce runs a single cycle bounded by the invocation timeout
func (s *Service) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Poller.InvocationTimeout)
	defer cancel()

	return metrics.RecordPollerDuration(competitionPollerType, s.PollCompetition)(ctx)
}

// PollCompetition executes one cycle: gate on the event start, request a provider refresh,
// then fetch, reconcile, submit and persist every tracked metric independently.
// Fetch and submission failures are logged and isolated; ledger failures are returned.
func (s *Service) PollCompetition(ctx context.Context) error {
	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cycleTime := s.now()
	eventStart := s.cfg.Poller.EventStartTime()
	if cycleTime.Before(eventStart) {
		log.Info().
			Time("event_start", eventStart.In(s.cfg.Poller.Location())).
			Msg("Competition has not started yet, skipping cycle")
		metrics.RecordCycleSkipped(cycleSkippedNotStarted)
		return nil
	}

	if !s.cfg.Poller.DisableLease {
		err := s.db.AcquireCycleLease(ctx, s.leaseOwner, s.cfg.Poller.LeaseTTL())
		if db.IsLeaseHeldError(err) {
			log.Warn().Err(err).Msg("Another cycle is in progress, skipping cycle")
			metrics.RecordCycleSkipped(cycleSkippedLeaseHeld)
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to acquire cycle lease: %w", err)
		}
		defer s.releaseLease(ctx)
	}

	s.requestRefresh(ctx)

	trackedMetrics := s.cfg.Competition.Metrics
	errs := make([]error, len(trackedMetrics))

	var wg conc.WaitGroup
	for i, metric := range trackedMetrics {
		wg.Go(func() {
			errs[i] = s.pollMetric(ctx, metric, cycleTime)
		})
	}
	if recovered := wg.WaitAndRecover(); recovered != nil {
		log.Error().Str("panic", recovered.String()).Msg("Metric pipeline panicked")
		errs = append(errs, recovered.AsError())
	}

	return errors.Join(errs...)
}

// requestRefresh asks the provider to refresh the competition without waiting for it.
// The refreshed values are only visible to later cycles.
func (s *Service) requestRefresh(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	startTime := time.Now()

	s.background.Go(func() {
		var pc panics.Catcher
		pc.Try(func() {
			if err := s.wom.RequestRefresh(ctx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("Failed to request competition refresh")
				metrics.RecordRefreshFailure()
				return
			}
			log.Ctx(ctx).Debug().
				Dur("duration", time.Since(startTime)).
				Msg("Competition refresh requested")
		})
		if recovered := pc.Recovered(); recovered != nil {
			log.Ctx(ctx).Warn().Str("panic", recovered.String()).Msg("Competition refresh panicked")
			metrics.RecordRefreshFailure()
		}
	})
}

func (s *Service) pollMetric(ctx context.Context, metric types.TrackedMetric, cycleTime time.Time) error {
	logger := log.Ctx(ctx).With().Str("metric", metric.String()).Logger()
	ctx = logger.WithContext(ctx)

	snapshots, err := s.wom.GetCompetitionParticipants(ctx, metric)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch competition participants")
		metrics.RecordFetchFailure(metric.String())
		return nil
	}

	result, err := s.reconcileMetric(ctx, metric, snapshots, cycleTime)
	if err != nil {
		return err
	}

	if len(result.candidates) == 0 {
		logger.Info().
			Int("participants", len(snapshots)).
			Int("unchanged", result.unchanged).
			Int("regressions", result.regressions).
			Msg("No progress to submit")
		return nil
	}

	outcomes := s.submitter.SubmitBatch(ctx, result.candidates)

	confirmed := make([]*types.CandidateEvent, 0, len(outcomes))
	records := make([]*model.LedgerRecord, 0, len(outcomes))
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		confirmed = append(confirmed, outcome.Event)
		records = append(records, model.NewLedgerRecord(
			outcome.Event.PlayerName, outcome.Event.Metric, outcome.Event.CumulativeValue,
		))
	}

	logger.Info().
		Int("participants", len(snapshots)).
		Int("candidates", len(result.candidates)).
		Int("submitted", len(confirmed)).
		Int("failed", len(result.candidates)-len(confirmed)).
		Int("unchanged", result.unchanged).
		Int("regressions", result.regressions).
		Msg("Competition metric submitted")

	if len(records) == 0 {
		return nil
	}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerPersistTimeout)
	defer cancel()

	if err := s.db.SaveLedgerRecords(persistCtx, records); err != nil {
		logger.Error().Err(err).
			Int("records", len(records)).
			Msg("Failed to persist ledger, confirmed deltas may be submitted again next cycle")
		return fmt.Errorf("failed to persist ledger for metric %s: %w", metric, err)
	}

	s.publishConfirmed(persistCtx, confirmed)
	return nil
}

// publishConfirmed is best-effort, the ledger is the source of truth
func (s *Service) publishConfirmed(ctx context.Context, confirmed []*types.CandidateEvent) {
	if s.publisher == nil {
		return
	}

	confirmedAt := s.now()
	for _, event := range confirmed {
		err := s.publisher.PushContributionEvent(ctx, queue.NewContributionEvent(event, confirmedAt))
		if err != nil {
			log.Ctx(ctx).Error().Err(err).
				Str("submission_id", event.SubmissionID).
				Msg("Failed to publish contribution event")
			metrics.RecordPublishError()
		}
	}
}

func (s *Service) releaseLease(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), leaseReleaseTimeout)
	defer cancel()

	if err := s.db.ReleaseCycleLease(ctx, s.leaseOwner); err != nil {
		// the lease expires on its own
		log.Ctx(ctx).Warn().Err(err).Msg("Failed to release cycle lease")
	}
}
