package types

import (
	"fmt"
	"time"
)

// SourceCompetition tags every event produced by the competition poller
const SourceCompetition = "competition"

// ParticipantSnapshot is the cumulative progress of one participant in one metric,
// as reported by the competition provider in the current cycle
type ParticipantSnapshot struct {
	PlayerName      string
	Metric          TrackedMetric
	CumulativeValue int64
}

// CandidateEvent is a positive delta computed in a cycle that hasn't been confirmed
// by the ingestion endpoint yet
type CandidateEvent struct {
	LedgerKey       string
	PlayerName      string
	Metric          TrackedMetric
	Delta           int64
	CumulativeValue int64
	SubmissionID    string
	SourceTag       string
}

// SubmissionID is unique per (player, metric, cycle). The cycle time is included
// with millisecond precision so that a resubmission in a later cycle gets a new id.
func SubmissionID(ledgerKey string, cycleTime time.Time) string {
	return fmt.Sprintf("%s_%s_%d", ledgerKey, SourceCompetition, cycleTime.UnixMilli())
}
