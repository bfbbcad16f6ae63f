package womclient

import (
	"context"
	"time"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
	"github.com/runebound-clan/competition-poller/internal/types"
)

type womClientWithMetrics struct {
	wom WomInterface
}

func NewWomClientWithMetrics(wom WomInterface) *womClientWithMetrics {
	return &womClientWithMetrics{wom: wom}
}

func (w *womClientWithMetrics) RequestRefresh(ctx context.Context) error {
	// this is just auxiliary type in order to call runWomClientMethodWithMetrics which always returns 2 values
	type zero struct{}
	_, err := runWomClientMethodWithMetrics("RequestRefresh", func() (zero, error) {
		return zero{}, w.wom.RequestRefresh(ctx)
	})
	return err
}

func (w *womClientWithMetrics) GetCompetitionParticipants(
	ctx context.Context, metric types.TrackedMetric,
) ([]types.ParticipantSnapshot, error) {
	return runWomClientMethodWithMetrics("GetCompetitionParticipants", func() ([]types.ParticipantSnapshot, error) {
		return w.wom.GetCompetitionParticipants(ctx, metric)
	})
}

func runWomClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordWomClientLatency(duration, method, err != nil)
	return v, err
}
