package query

import (
	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

// Page is one window of a filtered, sorted record view.
type Page struct {
	Records    []models.PropertyRecord
	Number     int
	TotalPages int
	Total      int
}

// Paginate windows records into the 1-based page of size perPage.
// Out-of-range pages clamp to the nearest valid page so a view filtered
// down while on a late page never renders empty by accident.
func Paginate(records []models.PropertyRecord, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 25
	}

	total := len(records)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Records:    records[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}
