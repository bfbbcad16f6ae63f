package ingestclient

import (
	"context"

	"github.com/runebound-clan/competition-poller/internal/types"
)

type IngestionInterface interface {
	// SubmitEvent posts a single event. Any non-2xx response is returned as *client.Error.
	SubmitEvent(ctx context.Context, event *types.CandidateEvent) error
}
