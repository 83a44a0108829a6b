package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Submission sheet headers the review queue relies on.
const (
	HeaderTimestamp = "Timestamp"
	HeaderStatus    = "Status"
	HeaderGmail     = "Gmail"
	HeaderFullName  = "Full Name"
	HeaderTitle     = "Title"
)

// ReviewStatus is the admin decision recorded in a submission's Status cell.
type ReviewStatus string

// Review statuses. The values are written verbatim into the sheet.
const (
	// StatusPending is an undecided submission (empty cell).
	StatusPending ReviewStatus = ""

	// StatusAccepted approves the submission for publication.
	StatusAccepted ReviewStatus = "Accept"

	// StatusRejected declines the submission.
	StatusRejected ReviewStatus = "Reject"
)

// IsValid returns true if the status is one of the three sheet values.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for Accept and Reject.
func (s ReviewStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether a row in status s may move to next.
// Only Pending rows may be decided, and only into a terminal state.
func (s ReviewStatus) CanTransitionTo(next ReviewStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// String returns the sheet cell value.
func (s ReviewStatus) String() string {
	return string(s)
}

// Description returns a human-readable label.
func (s ReviewStatus) Description() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	default:
		return UnknownValue
	}
}

// ParseReviewStatus maps user or sheet input to a status.
// Matching is case-insensitive and accepts "accepted"/"rejected"/"pending".
func ParseReviewStatus(s string) (ReviewStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending":
		return StatusPending, nil
	case "accept", "accepted":
		return StatusAccepted, nil
	case "reject", "rejected":
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// ReviewRow is one user submission.
type ReviewRow struct {
	// Number is the 1-indexed sheet row (the header is row 1).
	Number int

	// Cells maps header name to cell value.
	Cells map[string]string

	// Timestamp is the parsed submission time.
	Timestamp time.Time

	// Status is the current decision.
	Status ReviewStatus
}

// Cell returns the value under header, or "" when absent.
func (r ReviewRow) Cell(header string) string {
	return r.Cells[header]
}

// Contact returns the submitter details used for notifications.
func (r ReviewRow) Contact() Contact {
	return Contact{
		Email:    strings.TrimSpace(r.Cell(HeaderGmail)),
		FullName: strings.TrimSpace(r.Cell(HeaderFullName)),
		Title:    strings.TrimSpace(r.Cell(HeaderTitle)),
	}
}

// Contact holds the submitter fields needed to send a notification.
type Contact struct {
	Email    string
	FullName string
	Title    string
}

// IsComplete returns true when email, name and title are all present.
func (c Contact) IsComplete() bool {
	return c.Email != "" && c.FullName != "" && c.Title != ""
}

// submissionLayouts are the timestamp formats accepted in the Timestamp column.
// Google Forms writes the first one.
var submissionLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseSubmissionTime parses a Timestamp cell. It reports false for
// empty or unrecognised values.
func ParseSubmissionTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range submissionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReviewPeriod selects submissions by calendar month.
type ReviewPeriod struct {
	Year  int
	Month time.Month
}

// Contains reports whether t falls in the period.
func (p ReviewPeriod) Contains(t time.Time) bool {
	return t.Year() == p.Year && t.Month() == p.Month
}

// String renders the period as "January 2024".
func (p ReviewPeriod) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// ReviewSheet is the filtered view of a submission sheet for one period.
type ReviewSheet struct {
	// Kind is the submission type.
	Kind CorpusKind

	// Period is the month the rows were filtered to.
	Period ReviewPeriod

	// Headers are the sheet headers, right-padded to the widest row.
	Headers []string

	// Rows are the submissions in the period, in sheet order.
	Rows []ReviewRow

	// Years lists every year with at least one parseable submission, newest first.
	Years []int

	// EmptyColumns lists headers with no value in any row of the period.
	EmptyColumns []string

	// Dropped counts rows whose timestamp could not be parsed.
	Dropped int
}

// Accepted returns the accepted rows of the period.
func (s *ReviewSheet) Accepted() []ReviewRow {
	var out []ReviewRow
	for i := range s.Rows {
		if s.Rows[i].Status == StatusAccepted {
			out = append(out, s.Rows[i])
		}
	}
	return out
}

// Find returns the row with the given sheet number.
func (s *ReviewSheet) Find(number int) (ReviewRow, bool) {
	for i := range s.Rows {
		if s.Rows[i].Number == number {
			return s.Rows[i], true
		}
	}
	return ReviewRow{}, false
}

// ColumnLetter maps a 0-indexed header position to a sheet column letter.
// Only A through Z are addressable.
func ColumnLetter(index int) (string, error) {
	if index < 0 || index > 25 {
		return "", fmt.Errorf("%w: index %d", ErrColumnOutOfRange, index)
	}
	return string(rune('A' + index)), nil
}

// AppendLayout describes how an accepted submission is copied to the public sheet.
type AppendLayout struct {
	// SourceColumns is the A1 column span read from the submission sheet (e.g. "D:Q").
	SourceColumns string

	// Width is the number of source columns copied.
	Width int

	// LeadingBlank prepends one empty cell to the destination row.
	LeadingBlank bool

	// DestinationSheet is the tab the row is appended to.
	DestinationSheet string

	// DestinationColumns is the A1 column span of the destination (e.g. "A:O").
	DestinationColumns string
}

// LayoutFor returns the fixed append layout for a submission type.
func LayoutFor(kind CorpusKind) AppendLayout {
	if kind == CorpusCourses {
		return AppendLayout{
			SourceColumns:      "D:Q",
			Width:              14,
			LeadingBlank:       true,
			DestinationSheet:   "Online_Courses",
			DestinationColumns: "A:O",
		}
	}
	return AppendLayout{
		SourceColumns:      "D:T",
		Width:              17,
		DestinationSheet:   "Sheet1",
		DestinationColumns: "A:Q",
	}
}

// Shape truncates or right-pads values to Width and applies LeadingBlank.
func (l AppendLayout) Shape(values []string) []string {
	row := make([]string, l.Width)
	copy(row, values)
	if l.LeadingBlank {
		return append([]string{""}, row...)
	}
	return row
}

// Decision is a requested status change for one row.
type Decision struct {
	Row    int
	Status ReviewStatus
}

// SortDecisions orders decisions by ascending row number.
func SortDecisions(decisions []Decision) {
	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Row < decisions[j].Row
	})
}

// EmailOutcome records what happened to a decision's notification.
type EmailOutcome string

// Email outcomes.
const (
	EmailSent    EmailOutcome = "sent"
	EmailSkipped EmailOutcome = "skipped"
	EmailFailed  EmailOutcome = "failed"
	EmailNone    EmailOutcome = "none"
)

// ReviewOutcome is the per-row result of applying a decision.
type ReviewOutcome struct {
	// ID uniquely identifies the log entry.
	ID string

	// Kind is the submission type.
	Kind CorpusKind

	// Row is the sheet row number.
	Row int

	// Status is the requested decision.
	Status ReviewStatus

	// StatusUpdated is true when the Status cell was written.
	StatusUpdated bool

	// Email records the notification result.
	Email EmailOutcome

	// Recipient is the notified address, if any.
	Recipient string

	// Appended is true when the row was copied to the destination sheet.
	Appended bool

	// Errors collects failures from individual external calls.
	Errors []string

	// Warnings collects non-fatal notes such as missing contact fields.
	Warnings []string

	// DecidedAt is when the decision was applied.
	DecidedAt time.Time
}

// Failed returns true if any external call failed.
func (o ReviewOutcome) Failed() bool {
	return len(o.Errors) > 0
}

// AddError records a failure message.
func (o *ReviewOutcome) AddError(format string, args ...any) {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
}

// AddWarning records a non-fatal note.
func (o *ReviewOutcome) AddWarning(format string, args ...any) {
	o.Warnings = append(o.Warnings, fmt.Sprintf(format, args...))
}
