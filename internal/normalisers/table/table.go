// Package table parses CSV exports into a header-addressed table.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

const utf8BOM = "\ufeff"

// Table is a parsed CSV dataset. Every row has exactly len(Header) cells.
type Table struct {
	Header  []string
	Rows    [][]string
	Skipped int

	index map[string]int
}

// Parse reads CSV content with a header row. Rows whose field count differs
// from the header, or that fail to parse, are counted in Skipped and dropped.
func Parse(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.ReuseRecord = false

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row: %w", domain.ErrEmptyDataset)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{
		Header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			t.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) != len(t.Header) {
			t.Skipped++
			continue
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of column, or -1.
func (t *Table) Index(column string) int {
	if i, ok := t.index[column]; ok {
		return i
	}
	return -1
}

// Require returns ErrMissingColumn naming the first absent column.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if t.Index(c) < 0 {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Get returns the cell of row under column, or "" when the column is absent.
func (t *Table) Get(row []string, column string) string {
	i := t.Index(column)
	if i < 0 {
		return ""
	}
	return row[i]
}

// Fields maps every header to its cell in row.
func (t *Table) Fields(row []string) map[string]string {
	fields := make(map[string]string, len(t.Header))
	for i, h := range t.Header {
		fields[h] = row[i]
	}
	return fields
}
