package model

import (
	"time"

	"github.com/runebound-clan/competition-poller/internal/types"
)

// LedgerRecord is the last cumulative value confirmed by the ingestion endpoint for a (player, metric) pair.
// It is overwritten on every confirmed submission and never deleted by the poller.
type LedgerRecord struct {
	Key             string              `bson:"_id"` // types.LedgerKey(PlayerName, Metric)
	PlayerName      string              `bson:"player_name"`
	Metric          types.TrackedMetric `bson:"metric"`
	CumulativeValue int64               `bson:"cumulative_value"`
	UpdatedAt       time.Time           `bson:"updated_at"`
}

func NewLedgerRecord(playerName string, metric types.TrackedMetric, cumulativeValue int64) *LedgerRecord {
	return &LedgerRecord{
		Key:             types.LedgerKey(playerName, metric),
		PlayerName:      playerName,
		Metric:          metric,
		CumulativeValue: cumulativeValue,
	}
}
