package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SanOuhi99/RECT-v3-sub000/internal/models"
)

func makeRecords(n int) []models.PropertyRecord {
	out := make([]models.PropertyRecord, n)
	for i := range out {
		out[i] = models.PropertyRecord{ID: fmt.Sprintf("p%d", i+1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	records := makeRecords(25)

	p := Paginate(records, 1, 10)
	assert.Equal(t, 10, len(p.Records))
	assert.Equal(t, "p1", p.Records[0].ID)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 25, p.Total)

	last := Paginate(records, 3, 10)
	assert.Equal(t, 5, len(last.Records))
	assert.Equal(t, "p21", last.Records[0].ID)
}

func TestPaginate_ClampsOutOfRangePages(t *testing.T) {
	records := makeRecords(12)

	beyond := Paginate(records, 9, 10)
	assert.Equal(t, 2, beyond.Number)
	assert.Equal(t, 2, len(beyond.Records))

	before := Paginate(records, 0, 10)
	assert.Equal(t, 1, before.Number)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, 1, 10)
	assert.Empty(t, p.Records)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Total)
}
