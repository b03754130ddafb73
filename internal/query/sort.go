package query

import (
	"sort"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// Sort keys selectable in the dashboard table header.
const (
	SortByAddress           = "address"
	SortByLocation          = "location"
	SortByOwner             = "owner"
	SortByMatch             = "match"
	SortByContractOrCreated = "contractOrCreatedDate"
	SortByCreatedDate       = "createdDate"
)

// SortSpec pairs a sort key with a direction.
type SortSpec struct {
	Key       string
	Ascending bool
}

// Sort returns a new slice ordered by spec. The sort is stable so that
// records with equal keys keep their input order across re-sorts.
func Sort(records []models.PropertyRecord, spec SortSpec) []models.PropertyRecord {
	out := make([]models.PropertyRecord, len(records))
	copy(out, records)

	less := lessFunc(spec.Key)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if spec.Ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

func lessFunc(key string) func(a, b models.PropertyRecord) bool {
	switch key {
	case SortByAddress:
		return func(a, b models.PropertyRecord) bool { return a.Address < b.Address }
	case SortByLocation:
		return func(a, b models.PropertyRecord) bool { return a.Location() < b.Location() }
	case SortByOwner:
		return func(a, b models.PropertyRecord) bool { return a.OwnerName < b.OwnerName }
	case SortByMatch:
		return func(a, b models.PropertyRecord) bool { return a.MatchValue() < b.MatchValue() }
	case SortByContractOrCreated:
		return func(a, b models.PropertyRecord) bool { return a.EffectiveDate().Before(b.EffectiveDate()) }
	case SortByCreatedDate:
		return func(a, b models.PropertyRecord) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return nil
	}
}
