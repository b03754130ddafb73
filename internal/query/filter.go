// Package query implements the in-memory filter, sort, and aggregation
// engine behind the property dashboard. Every function here is pure:
// inputs are never mutated and the clock is passed in explicitly.
package query

import (
	"strings"
	"time"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// Date-range buckets selectable in the dashboard filter bar.
const (
	DateRangeToday       = "today"
	DateRangeWeek        = "week"
	DateRangeMonth       = "month"
	DateRangeThreeMonths = "3months"
)

// Match-quality buckets.
const (
	MatchHigh   = "high"   // >= 80
	MatchMedium = "medium" // 50..79
	MatchLow    = "low"    // < 50
)

// FilterSpec describes one filter pass. Zero-valued fields impose no
// constraint; set fields combine as a logical AND.
type FilterSpec struct {
	Search      string
	State       string
	County      string
	DateRange   string
	MatchBucket string
	HasContract *bool
}

// Filter applies spec against records using the current wall clock.
func Filter(records []models.PropertyRecord, spec FilterSpec) []models.PropertyRecord {
	return FilterAt(records, spec, time.Now())
}

// FilterAt is Filter with an explicit reference time for the date-range
// buckets.
func FilterAt(records []models.PropertyRecord, spec FilterSpec, now time.Time) []models.PropertyRecord {
	out := make([]models.PropertyRecord, 0, len(records))
	for _, r := range records {
		if matches(r, spec, now) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.PropertyRecord, spec FilterSpec, now time.Time) bool {
	if spec.Search != "" && !matchesSearch(r, spec.Search) {
		return false
	}
	if spec.State != "" && r.State != spec.State {
		return false
	}
	if spec.County != "" && r.County != spec.County {
		return false
	}
	if spec.DateRange != "" && !matchesDateRange(r, spec.DateRange, now) {
		return false
	}
	if spec.MatchBucket != "" && !matchesBucket(r, spec.MatchBucket) {
		return false
	}
	if spec.HasContract != nil && (r.ContractDate != nil) != *spec.HasContract {
		return false
	}
	return true
}

func matchesSearch(r models.PropertyRecord, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{r.Address, r.ID, r.OwnerName, r.SellerName, r.County} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// matchesDateRange compares the record's effective date against now in
// whole days. "today" means the same number of elapsed whole days is
// zero, not the same calendar date.
func matchesDateRange(r models.PropertyRecord, bucket string, now time.Time) bool {
	days := int(now.Sub(r.EffectiveDate()).Hours() / 24)
	switch bucket {
	case DateRangeToday:
		return days == 0
	case DateRangeWeek:
		return days <= 7
	case DateRangeMonth:
		return days <= 30
	case DateRangeThreeMonths:
		return days <= 90
	default:
		return true
	}
}

func matchesBucket(r models.PropertyRecord, bucket string) bool {
	v := r.MatchValue()
	switch bucket {
	case MatchHigh:
		return v >= 80
	case MatchMedium:
		return v >= 50 && v < 80
	case MatchLow:
		return v < 50
	default:
		return true
	}
}
