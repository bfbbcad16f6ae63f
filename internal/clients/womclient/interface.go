package womclient

import (
	"context"

	"github.com/runebound-clan/competition-poller/internal/types"
)

type WomInterface interface {
	// RequestRefresh asks the provider to update every participant of the competition.
	// The provider refreshes asynchronously, results show up in later fetches.
	RequestRefresh(ctx context.Context) error
	GetCompetitionParticipants(ctx context.Context, metric types.TrackedMetric) ([]types.ParticipantSnapshot, error)
}
