package queue

import (
	"time"

	"github.com/runebound-clan/competition-poller/internal/types"
)

const routingKeyPrefix = "competition."

// ContributionEvent is published for every submission the ingestion endpoint confirmed
// and the ledger persisted
type ContributionEvent struct {
	SubmissionID    string `json:"submission_id"`
	PlayerName      string `json:"player_name"`
	Metric          string `json:"metric"`
	Delta           int64  `json:"delta"`
	CumulativeValue int64  `json:"cumulative_value"`
	Source          string `json:"source"`
	ConfirmedAt     int64  `json:"confirmed_at"`
}

func NewContributionEvent(event *types.CandidateEvent, confirmedAt time.Time) *ContributionEvent {
	return &ContributionEvent{
		SubmissionID:    event.SubmissionID,
		PlayerName:      event.PlayerName,
		Metric:          event.Metric.String(),
		Delta:           event.Delta,
		CumulativeValue: event.CumulativeValue,
		Source:          event.SourceTag,
		ConfirmedAt:     confirmedAt.UnixMilli(),
	}
}

func (e *ContributionEvent) RoutingKey() string {
	return routingKeyPrefix + e.Metric
}
