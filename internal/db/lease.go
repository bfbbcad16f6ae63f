package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/runebound-clan/competition-poller/internal/db/model"
)

// AcquireCycleLease takes the cycle lease for owner until now+ttl. It succeeds when
// there is no lease, the lease expired or owner already holds it.
func (db *Database) AcquireCycleLease(ctx context.Context, owner string, ttl time.Duration) error {
	now := time.Now().UTC()

	filter := bson.M{
		"_id": model.CycleLeaseID,
		"$or": bson.A{
			bson.M{"expires_at": bson.M{"$lte": now}},
			bson.M{"owner": owner},
		},
	}
	update := bson.M{"$set": bson.M{
		"owner":       owner,
		"acquired_at": now,
		"expires_at":  now.Add(ttl),
	}}

	// when the filter doesn't match an existing lease the upsert collides on _id
	_, err := db.collection(model.CycleLeaseCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	err = toDuplicateKeyError(model.CycleLeaseID, err)
	if err == nil {
		return nil
	}
	if !IsDuplicateKeyError(err) {
		return err
	}

	held := &LeaseHeldError{}
	var current model.CycleLease
	findErr := db.collection(model.CycleLeaseCollection).
		FindOne(ctx, bson.M{"_id": model.CycleLeaseID}).
		Decode(&current)
	if findErr == nil {
		held.Owner = current.Owner
		held.ExpiresAt = current.ExpiresAt
	}
	return held
}

// ReleaseCycleLease deletes the lease only if owner holds it
func (db *Database) ReleaseCycleLease(ctx context.Context, owner string) error {
	_, err := db.collection(model.CycleLeaseCollection).
		DeleteOne(ctx, bson.M{"_id": model.CycleLeaseID, "owner": owner})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}
