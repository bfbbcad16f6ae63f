package ingestclient

import (
	"context"
	"time"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
)

type clientWithMetrics struct {
	ingestion IngestionInterface
}

func NewClientWithMetrics(ingestion IngestionInterface) *clientWithMetrics {
	return &clientWithMetrics{ingestion: ingestion}
}

func (c *clientWithMetrics) SubmitEvent(ctx context.Context, event *types.CandidateEvent) error {
	startTime := time.Now()
	err := c.ingestion.SubmitEvent(ctx, event)
	duration := time.Since(startTime)

	metrics.RecordIngestionClientLatency(duration, "SubmitEvent", err != nil)
	return err
}
