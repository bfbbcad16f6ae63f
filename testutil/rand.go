package testutil

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/runebound-clan/competition-poller/internal/types"
)

// RandomAlphaNum generates random alphanumeric string
// in case length <= 0 it returns empty string
func RandomAlphaNum(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	randomString := make([]byte, length)
	for i := range randomString {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		randomString[i] = charset[num.Int64()]
	}

	return string(randomString), nil
}

// RandomPlayerName returns a display name that is unique enough for a single test.
// It may contain spaces, so it also exercises ledger key sanitization.
func RandomPlayerName() string {
	return fmt.Sprintf("%s %s", gofakeit.FirstName(), gofakeit.LetterN(5))
}

// RandomSnapshots returns n snapshots of distinct players for metric
func RandomSnapshots(metric types.TrackedMetric, n int) []types.ParticipantSnapshot {
	snapshots := make([]types.ParticipantSnapshot, 0, n)
	for i := 0; i < n; i++ {
		snapshots = append(snapshots, types.ParticipantSnapshot{
			PlayerName:      fmt.Sprintf("%s %d", gofakeit.Username(), i),
			Metric:          metric,
			CumulativeValue: int64(gofakeit.IntRange(1, 5_000_000)),
		})
	}
	return snapshots
}
