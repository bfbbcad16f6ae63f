package model

import "time"

// CycleLeaseID is the id of the single lease document guarding poll cycles
const CycleLeaseID = "competition-poller"

type CycleLease struct {
	ID         string    `bson:"_id"`
	Owner      string    `bson:"owner"`
	AcquiredAt time.Time `bson:"acquired_at"`
	ExpiresAt  time.Time `bson:"expires_at"`
}
