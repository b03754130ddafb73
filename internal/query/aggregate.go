package query

import (
	"math"
	"sort"
	"time"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// StateCount is one bar of the state-distribution histogram.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// Summary holds the dashboard-level aggregates over one record set.
type Summary struct {
	Total        int          `json:"total"`
	NewLast7     int          `json:"new_last_7"`
	NewLast30    int          `json:"new_last_30"`
	WithContact  int          `json:"with_contact"`
	ContactRate  int          `json:"contact_rate"`
	ByState      []StateCount `json:"by_state"`
}

// Aggregate computes Summary using the current wall clock.
func Aggregate(records []models.PropertyRecord) Summary {
	return AggregateAt(records, time.Now())
}

// AggregateAt computes all aggregates in a single pass over records.
func AggregateAt(records []models.PropertyRecord, now time.Time) Summary {
	s := Summary{Total: len(records)}
	byState := make(map[string]int)

	for _, r := range records {
		days := int(now.Sub(r.CreatedAt).Hours() / 24)
		if days <= 7 {
			s.NewLast7++
		}
		if days <= 30 {
			s.NewLast30++
		}
		if r.HasContact() {
			s.WithContact++
		}
		if r.State != "" {
			byState[r.State]++
		}
	}

	if s.Total > 0 {
		s.ContactRate = int(math.Round(float64(s.WithContact) / float64(s.Total) * 100))
	}

	s.ByState = make([]StateCount, 0, len(byState))
	for state, count := range byState {
		s.ByState = append(s.ByState, StateCount{State: state, Count: count})
	}
	sort.Slice(s.ByState, func(i, j int) bool {
		if s.ByState[i].Count != s.ByState[j].Count {
			return s.ByState[i].Count > s.ByState[j].Count
		}
		return s.ByState[i].State < s.ByState[j].State
	})

	return s
}
