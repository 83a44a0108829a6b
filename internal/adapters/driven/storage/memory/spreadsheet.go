package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Spreadsheet implements the interface.
var _ driven.Spreadsheet = (*Spreadsheet)(nil)

// Spreadsheet is an in-memory implementation of driven.Spreadsheet.
// It understands the A1 ranges the review service issues: column spans
// ("A:Z"), single cells ("D7") and bounded blocks ("A2:C4").
type Spreadsheet struct {
	mu    sync.RWMutex
	books map[string]map[string][][]string
}

// NewSpreadsheet creates an empty in-memory spreadsheet store.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{
		books: make(map[string]map[string][][]string),
	}
}

// SetSheet replaces the contents of one tab.
func (s *Spreadsheet) SetSheet(spreadsheetID, sheet string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[spreadsheetID]
	if !ok {
		book = make(map[string][][]string)
		s.books[spreadsheetID] = book
	}
	book[sheet] = cloneRows(rows)
}

// Sheet returns a copy of one tab's rows.
func (s *Spreadsheet) Sheet(spreadsheetID, sheet string) [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.books[spreadsheetID][sheet])
}

// ReadValues returns the rows of a range with trailing empty cells trimmed.
func (s *Spreadsheet) ReadValues(_ context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	r, err := parseA1(a1Range)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.tab(spreadsheetID, r.sheet)
	if err != nil {
		return nil, err
	}

	last := len(rows)
	if r.lastRow > 0 && r.lastRow < last {
		last = r.lastRow
	}
	var out [][]string
	for i := r.firstRow - 1; i < last; i++ {
		out = append(out, trimRight(slice(rows[i], r.firstCol, r.lastCol)))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

// UpdateValues writes values starting at the range's top-left cell.
func (s *Spreadsheet) UpdateValues(_ context.Context, spreadsheetID, a1Range string, values [][]string) error {
	r, err := parseA1(a1Range)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.tab(spreadsheetID, r.sheet)
	if err != nil {
		return err
	}

	for i, vals := range values {
		rowIdx := r.firstRow - 1 + i
		for len(rows) <= rowIdx {
			rows = append(rows, nil)
		}
		for j, v := range vals {
			col := r.firstCol + j
			for len(rows[rowIdx]) <= col {
				rows[rowIdx] = append(rows[rowIdx], "")
			}
			rows[rowIdx][col] = v
		}
	}
	s.books[spreadsheetID][r.sheet] = rows
	return nil
}

// AppendValues adds rows after the last row of the tab, aligned to the
// range's first column.
func (s *Spreadsheet) AppendValues(_ context.Context, spreadsheetID, a1Range string, values [][]string) error {
	r, err := parseA1(a1Range)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.tab(spreadsheetID, r.sheet)
	if err != nil {
		return err
	}

	for _, vals := range values {
		row := make([]string, r.firstCol, r.firstCol+len(vals))
		rows = append(rows, append(row, vals...))
	}
	s.books[spreadsheetID][r.sheet] = rows
	return nil
}

func (s *Spreadsheet) tab(spreadsheetID, sheet string) ([][]string, error) {
	book, ok := s.books[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("spreadsheet %s: %w", spreadsheetID, domain.ErrNotFound)
	}
	rows, ok := book[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheet, domain.ErrNotFound)
	}
	return rows, nil
}

// a1 is a parsed A1 range. Columns are 0-based, rows 1-based; a zero
// lastRow means unbounded and a negative lastCol means to the end.
type a1 struct {
	sheet    string
	firstCol int
	lastCol  int
	firstRow int
	lastRow  int
}

func parseA1(s string) (a1, error) {
	bang := strings.LastIndex(s, "!")
	if bang < 0 {
		return a1{}, fmt.Errorf("%w: range %q has no sheet", domain.ErrInvalidInput, s)
	}
	sheet := s[:bang]
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	start, end, span := strings.Cut(s[bang+1:], ":")
	c1, r1, err := parseCell(start)
	if err != nil {
		return a1{}, err
	}
	r := a1{sheet: sheet, firstCol: c1, lastCol: -1, firstRow: max(r1, 1)}
	if !span {
		r.lastCol = c1
		if r1 > 0 {
			r.lastRow = r1
		}
		return r, nil
	}

	c2, r2, err := parseCell(end)
	if err != nil {
		return a1{}, err
	}
	r.lastCol = c2
	r.lastRow = r2
	return r, nil
}

// parseCell splits "AB12" into column 27 and row 12. The row is 0 when omitted.
func parseCell(s string) (col, row int, err error) {
	i := 0
	col = 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		col = col*26 + int(s[i]-'A'+1)
		i++
	}
	if i == 0 {
		return 0, 0, fmt.Errorf("%w: cell %q", domain.ErrInvalidInput, s)
	}
	if i < len(s) {
		row, err = strconv.Atoi(s[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("%w: cell %q", domain.ErrInvalidInput, s)
		}
	}
	return col - 1, row, nil
}

func slice(row []string, first, last int) []string {
	if first >= len(row) {
		return []string{}
	}
	end := len(row)
	if last >= 0 && last+1 < end {
		end = last + 1
	}
	out := make([]string, end-first)
	copy(out, row[first:end])
	return out
}

func trimRight(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}

func cloneRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
