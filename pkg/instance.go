package pkg

import (
	"fmt"
	"math/rand/v2"
	"os"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// InstanceID identifies the running process, e.g. "poller-7c9d-4242-k3x9qa".
// Two processes on the same host and pid (restart) still differ by the random suffix.
func InstanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%d-%s", host, os.Getpid(), randomSuffix(6))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))] //nolint:gosec
	}
	return string(b)
}
