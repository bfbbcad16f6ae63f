package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"

	"github.com/runebound-clan/competition-poller/internal/clients/client"
	"github.com/runebound-clan/competition-poller/internal/clients/ingestclient"
	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
	"github.com/runebound-clan/competition-poller/internal/utils"
)

const defaultSubmissionWindow = 3

// SubmissionOutcome is the result of submitting one candidate event
type SubmissionOutcome struct {
	Event *types.CandidateEvent
	Err   error
}

func (o SubmissionOutcome) Succeeded() bool {
	return o.Err == nil
}

// Submitter posts candidate events to the ingestion endpoint window by window,
// at most window submissions are in flight at any time
type Submitter struct {
	ingestion ingestclient.IngestionInterface
	window    int
}

func NewSubmitter(ingestion ingestclient.IngestionInterface, window int) *Submitter {
	if window <= 0 {
		window = defaultSubmissionWindow
	}
	return &Submitter{
		ingestion: ingestion,
		window:    window,
	}
}

// SubmitBatch returns one outcome per event. A failed or panicking submission
// never affects its siblings; the next window starts once the current one is done.
func (s *Submitter) SubmitBatch(ctx context.Context, events []*types.CandidateEvent) []SubmissionOutcome {
	outcomes := make([]SubmissionOutcome, 0, len(events))

	for _, window := range utils.Chunk(events, s.window) {
		p := pool.NewWithResults[SubmissionOutcome]().WithMaxGoroutines(s.window)
		for _, event := range window {
			p.Go(func() SubmissionOutcome {
				return s.submit(ctx, event)
			})
		}
		outcomes = append(outcomes, p.Wait()...)
	}

	return outcomes
}

func (s *Submitter) submit(ctx context.Context, event *types.CandidateEvent) SubmissionOutcome {
	var err error
	var pc panics.Catcher
	pc.Try(func() {
		err = s.ingestion.SubmitEvent(ctx, event)
	})
	if recovered := pc.Recovered(); recovered != nil {
		err = fmt.Errorf("submission panicked: %w", recovered.AsError())
	}

	metrics.RecordSubmission(event.Metric.String(), err != nil)

	if err != nil {
		logEvent := log.Ctx(ctx).Error().
			Err(err).
			Str("player", event.PlayerName).
			Str("metric", event.Metric.String()).
			Str("submission_id", event.SubmissionID).
			Int64("delta", event.Delta)

		var clientErr *client.Error
		if errors.As(err, &clientErr) {
			logEvent = logEvent.
				Int("status", clientErr.StatusCode).
				Str("body", clientErr.Body)
		}
		logEvent.Msg("failed to submit event, it stays outstanding for the next cycle")
	}

	return SubmissionOutcome{Event: event, Err: err}
}
