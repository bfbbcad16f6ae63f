package consumer

import (
	"context"

	"github.com/runebound-clan/competition-poller/internal/queue"
)

// EventPublisher fans out confirmed contributions to downstream consumers
type EventPublisher interface {
	PushContributionEvent(ctx context.Context, ev *queue.ContributionEvent) error
	Shutdown()
}
