package domain

// PageSize is the number of results shown per page.
const PageSize = 5

// Page is an immutable window over an ordered result list.
type Page struct {
	// Index is the zero-based page number.
	Index int

	// Count is the total number of pages (at least 1).
	Count int

	// Offset is the position of Items[0] in the full list.
	Offset int

	// Total is the length of the full list.
	Total int

	// Items are the results on this page.
	Items []RankedResult

	// HasPrev is false on the first page.
	HasPrev bool

	// HasNext is false on the last page.
	HasNext bool
}

// Paginate returns the page at index, clamped to the valid range.
// It never modifies results.
func Paginate(results []RankedResult, index int) Page {
	count := (len(results) + PageSize - 1) / PageSize
	if count == 0 {
		count = 1
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}

	start := index * PageSize
	end := start + PageSize
	if end > len(results) {
		end = len(results)
	}
	if start > end {
		start = end
	}

	return Page{
		Index:   index,
		Count:   count,
		Offset:  start,
		Total:   len(results),
		Items:   results[start:end:end],
		HasPrev: index > 0,
		HasNext: index < count-1,
	}
}

// Number returns the one-based page number for display.
func (p Page) Number() int {
	return p.Index + 1
}
