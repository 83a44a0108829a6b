package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeResults(n int) []RankedResult {
	results := make([]RankedResult, n)
	for i := range results {
		results[i] = RankedResult{Record: Record{Index: i}, Similarity: 1 - float64(i)/100}
	}
	return results
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		index     int
		wantIndex int
		wantCount int
		wantItems int
		wantPrev  bool
		wantNext  bool
	}{
		{"empty list is one page", 0, 0, 0, 1, 0, false, false},
		{"single partial page", 3, 0, 0, 1, 3, false, false},
		{"exactly one page", 5, 0, 0, 1, 5, false, false},
		{"first of three", 12, 0, 0, 3, 5, false, true},
		{"middle of three", 12, 1, 1, 3, 5, true, true},
		{"last partial page", 12, 2, 2, 3, 2, true, false},
		{"negative clamps to first", 12, -4, 0, 3, 5, false, true},
		{"overflow clamps to last", 12, 9, 2, 3, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(makeResults(tt.total), tt.index)

			assert.Equal(t, tt.wantIndex, page.Index)
			assert.Equal(t, tt.wantCount, page.Count)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantPrev, page.HasPrev)
			assert.Equal(t, tt.wantNext, page.HasNext)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestPaginate_ItemsFollowOrder(t *testing.T) {
	results := makeResults(7)

	page := Paginate(results, 1)

	assert.Equal(t, 5, page.Offset)
	assert.Equal(t, 2, page.Number())
	assert.Equal(t, 5, page.Items[0].Record.Index)
	assert.Equal(t, 6, page.Items[1].Record.Index)
}

func TestPaginate_DoesNotAliasAppend(t *testing.T) {
	results := makeResults(7)

	page := Paginate(results, 0)
	_ = append(page.Items, RankedResult{Record: Record{Index: 99}})

	assert.Equal(t, 5, results[5].Record.Index)
}
