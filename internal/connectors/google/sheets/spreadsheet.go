// Package sheets provides the Google Sheets implementation of the
// spreadsheet port used by the review queue.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Spreadsheet implements the interface.
var _ driven.Spreadsheet = (*Spreadsheet)(nil)

// Value input and insert options. Cells are written verbatim.
const (
	valueInputRaw  = "RAW"
	insertRows     = "INSERT_ROWS"
	majorDimension = "ROWS"
)

// Spreadsheet reads and writes values through the Sheets API v4.
type Spreadsheet struct {
	svc     *sheets.Service
	limiter *google.RateLimiter
}

// New creates a Sheets-backed spreadsheet.
func New(svc *sheets.Service) *Spreadsheet {
	return &Spreadsheet{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceSheets),
	}
}

// ReadValues returns the formatted values of a range.
func (s *Spreadsheet) ReadValues(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		MajorDimension(majorDimension).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", a1Range, s.limiter.Observe(err))
	}

	return toStrings(resp.Values), nil
}

// UpdateValues overwrites a range.
func (s *Spreadsheet) UpdateValues(ctx context.Context, spreadsheetID, a1Range string, values [][]string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, a1Range, valueRange(a1Range, values)).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", a1Range, s.limiter.Observe(err))
	}
	return nil
}

// AppendValues inserts rows after the table found in a range.
func (s *Spreadsheet) AppendValues(ctx context.Context, spreadsheetID, a1Range string, values [][]string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, a1Range, valueRange(a1Range, values)).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", a1Range, s.limiter.Observe(err))
	}
	return nil
}

func valueRange(a1Range string, values [][]string) *sheets.ValueRange {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		rows[i] = cells
	}
	return &sheets.ValueRange{
		Range:          a1Range,
		MajorDimension: majorDimension,
		Values:         rows,
	}
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}
