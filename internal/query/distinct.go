package query

import (
	"sort"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// DistinctStates returns the deduplicated, lexicographically sorted set
// of states present in records. Empty states are skipped.
func DistinctStates(records []models.PropertyRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.State != "" {
			seen[r.State] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DistinctCountiesForState returns the deduplicated, sorted counties of
// the given state.
func DistinctCountiesForState(records []models.PropertyRecord, state string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.State == state && r.County != "" {
			seen[r.County] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
