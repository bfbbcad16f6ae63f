package types

import "strings"

// LedgerKey builds the ledger document id for a (player, metric) pair.
// Every character of the player name outside [a-zA-Z0-9] is replaced with '_'
// and the metric is appended, so "Iron Man-1" + mining becomes "Iron_Man_1_mining".
//
// Distinct names can map to the same key ("a b" and "a_b"). Callers that
// reconcile a batch of participants must handle such collisions themselves.
func LedgerKey(playerName string, metric TrackedMetric) string {
	var b strings.Builder
	b.Grow(len(playerName) + len(metric) + 1)

	for _, r := range playerName {
		if isASCIIAlphaNum(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteByte('_')
	b.WriteString(metric.String())

	return b.String()
}

func isASCIIAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
