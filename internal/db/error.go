package db

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// toDuplicateKeyError maps a driver duplicate key error on key to DuplicateKeyError,
// other errors are returned unchanged
func toDuplicateKeyError(key string, err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	return &DuplicateKeyError{
		Key:     key,
		Message: fmt.Sprintf("duplicate key %s: %v", key, err),
	}
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// LeaseHeldError is returned when another owner holds an unexpired cycle lease
type LeaseHeldError struct {
	Owner     string
	ExpiresAt time.Time
}

func (e *LeaseHeldError) Error() string {
	if e.Owner == "" {
		return "cycle lease is held by another owner"
	}
	return fmt.Sprintf("cycle lease is held by %s until %s", e.Owner, e.ExpiresAt.Format(time.RFC3339))
}

func IsLeaseHeldError(err error) bool {
	var target *LeaseHeldError
	return errors.As(err, &target)
}
