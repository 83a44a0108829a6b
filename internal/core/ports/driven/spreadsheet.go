package driven

import "context"

// Spreadsheet reads and writes cell ranges of a remote spreadsheet.
// Ranges use A1 notation including the sheet name (e.g., "'Form Responses 1'!A:Z").
type Spreadsheet interface {
	// ReadValues returns the rows of a range. Trailing empty cells may be omitted
	// so rows can be ragged.
	ReadValues(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error)

	// UpdateValues overwrites a range with values, written verbatim.
	UpdateValues(ctx context.Context, spreadsheetID, a1Range string, values [][]string) error

	// AppendValues inserts rows after the last row of the range's table.
	AppendValues(ctx context.Context, spreadsheetID, a1Range string, values [][]string) error
}
