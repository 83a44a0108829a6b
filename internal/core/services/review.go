package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
	"github.com/custodia-labs/tristep/internal/logger"
)

// Ensure ReviewService implements the interface.
var _ driving.ReviewService = (*ReviewService)(nil)

// sheetColumns is the span read when listing or deciding submissions.
const sheetColumns = "A:Z"

// ReviewService moves submissions through Pending -> Accept | Reject.
// Deciding writes the Status cell, notifies the submitter and, on Accept,
// copies the row to the public dataset.
type ReviewService struct {
	settings driving.SettingsService
	sheets   driven.Spreadsheet
	mailer   driven.Mailer
	log      driven.ReviewLog

	now   func() time.Time
	newID func() string
}

// NewReviewService creates a review service.
// mailer and log may be nil.
func NewReviewService(
	settings driving.SettingsService,
	sheets driven.Spreadsheet,
	mailer driven.Mailer,
	log driven.ReviewLog,
) *ReviewService {
	return &ReviewService{
		settings: settings,
		sheets:   sheets,
		mailer:   mailer,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// List returns the submissions of one month.
func (s *ReviewService) List(ctx context.Context, kind domain.CorpusKind, period domain.ReviewPeriod) (*domain.ReviewSheet, error) {
	sheet, err := s.sheetFor(kind)
	if err != nil {
		return nil, err
	}

	values, err := s.sheets.ReadValues(ctx, sheet.SpreadsheetID, a1Range(sheet.SheetName, sheetColumns))
	if err != nil {
		return nil, fmt.Errorf("read %s submissions: %w", kind, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s submissions: %w", kind, domain.ErrEmptyDataset)
	}

	headers, rows := padTable(values)
	tsCol := indexOf(headers, domain.HeaderTimestamp)
	if tsCol < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, domain.HeaderTimestamp)
	}

	result := &domain.ReviewSheet{Kind: kind, Period: period, Headers: headers}
	years := make(map[int]bool)

	for i, cells := range rows {
		ts, ok := domain.ParseSubmissionTime(cells[tsCol])
		if !ok {
			result.Dropped++
			continue
		}
		years[ts.Year()] = true
		if !period.Contains(ts) {
			continue
		}
		result.Rows = append(result.Rows, buildRow(headers, cells, i+2, ts))
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("%s submissions: %w", kind, domain.ErrNoTimestamps)
	}

	for y := range years {
		result.Years = append(result.Years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(result.Years)))

	if len(result.Rows) > 0 {
		result.EmptyColumns = emptyColumns(headers, result.Rows)
	}

	logger.Debug("%s %s: %d rows, %d dropped", kind, period, len(result.Rows), result.Dropped)
	return result, nil
}

// Decide applies Accept or Reject to one sheet row.
func (s *ReviewService) Decide(ctx context.Context, kind domain.CorpusKind, row int, status domain.ReviewStatus) (*domain.ReviewOutcome, error) {
	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a decision", domain.ErrInvalidStatus, status)
	}
	sheet, err := s.sheetFor(kind)
	if err != nil {
		return nil, err
	}

	values, err := s.sheets.ReadValues(ctx, sheet.SpreadsheetID, a1Range(sheet.SheetName, sheetColumns))
	if err != nil {
		return nil, fmt.Errorf("read %s submissions: %w", kind, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s submissions: %w", kind, domain.ErrEmptyDataset)
	}
	if row < 2 || row > len(values) {
		return nil, fmt.Errorf("%w: row %d", domain.ErrRowNotFound, row)
	}

	headers, rows := padTable(values)
	cells := rows[row-2]

	statusCol := indexOf(headers, domain.HeaderStatus)
	if statusCol < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, domain.HeaderStatus)
	}
	letter, err := domain.ColumnLetter(statusCol)
	if err != nil {
		return nil, err
	}

	current := currentStatus(cells[statusCol])
	if !current.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: row %d is %s", domain.ErrAlreadyReviewed, row, current.Description())
	}

	outcome := &domain.ReviewOutcome{
		ID:        s.newID(),
		Kind:      kind,
		Row:       row,
		Status:    status,
		Email:     domain.EmailNone,
		DecidedAt: s.now(),
	}
	defer s.record(ctx, outcome)

	cell := a1Range(sheet.SheetName, fmt.Sprintf("%s%d", letter, row))
	if err := s.sheets.UpdateValues(ctx, sheet.SpreadsheetID, cell, [][]string{{status.String()}}); err != nil {
		outcome.AddError("update status of row %d: %v", row, err)
		logger.Error("update status of row %d: %v", row, err)
		return outcome, nil
	}
	outcome.StatusUpdated = true

	s.notify(ctx, kind, buildRow(headers, cells, row, time.Time{}).Contact(), outcome)

	if status == domain.StatusAccepted {
		if err := s.publish(ctx, kind, sheet, row); err != nil {
			outcome.AddError("append row %d to %s: %v", row, domain.LayoutFor(kind).DestinationSheet, err)
			logger.Error("append row %d: %v", row, err)
		} else {
			outcome.Appended = true
		}
	}

	return outcome, nil
}

// Apply decides each row in ascending row order. Rows that cannot be
// decided get an outcome carrying the error; the batch always completes.
func (s *ReviewService) Apply(ctx context.Context, kind domain.CorpusKind, decisions []domain.Decision) ([]domain.ReviewOutcome, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: corpus kind %q", domain.ErrUnsupportedType, kind)
	}

	ordered := make([]domain.Decision, len(decisions))
	copy(ordered, decisions)
	domain.SortDecisions(ordered)

	outcomes := make([]domain.ReviewOutcome, 0, len(ordered))
	for _, d := range ordered {
		outcome, err := s.Decide(ctx, kind, d.Row, d.Status)
		if err != nil {
			outcome = &domain.ReviewOutcome{
				ID:        s.newID(),
				Kind:      kind,
				Row:       d.Row,
				Status:    d.Status,
				Email:     domain.EmailNone,
				DecidedAt: s.now(),
			}
			outcome.AddError("%v", err)
			s.record(ctx, outcome)
		}
		outcomes = append(outcomes, *outcome)
	}

	return outcomes, nil
}

// Log returns recorded outcomes, newest first.
func (s *ReviewService) Log(ctx context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error) {
	if s.log == nil {
		return nil, nil
	}
	return s.log.List(ctx, kind, limit)
}

func (s *ReviewService) sheetFor(kind domain.CorpusKind) (domain.SheetSettings, error) {
	if !kind.IsValid() {
		return domain.SheetSettings{}, fmt.Errorf("%w: corpus kind %q", domain.ErrUnsupportedType, kind)
	}
	if s.sheets == nil {
		return domain.SheetSettings{}, errors.New("spreadsheet access not configured (set google.credentials_file)")
	}
	settings, err := s.settings.Get()
	if err != nil {
		return domain.SheetSettings{}, fmt.Errorf("get settings: %w", err)
	}
	sheet := settings.Review.Sheet(kind)
	if !sheet.IsConfigured() {
		return domain.SheetSettings{}, fmt.Errorf("%s review sheet: %w", kind, domain.ErrSourceNotConfigured)
	}
	return sheet, nil
}

// notify sends the decision email when the contact is complete.
func (s *ReviewService) notify(ctx context.Context, kind domain.CorpusKind, contact domain.Contact, outcome *domain.ReviewOutcome) {
	if !contact.IsComplete() {
		outcome.Email = domain.EmailSkipped
		outcome.AddWarning("unable to send email due to missing information. Email: %s, Name: %s, Title: %s",
			contact.Email, contact.FullName, contact.Title)
		logger.Warn("row %d: %s", outcome.Row, outcome.Warnings[len(outcome.Warnings)-1])
		return
	}
	if s.mailer == nil {
		outcome.Email = domain.EmailSkipped
		outcome.AddWarning("mail delivery not configured, no email sent to %s", contact.Email)
		return
	}

	n, err := domain.NewReviewNotification(kind, contact, outcome.Status)
	if err != nil {
		outcome.Email = domain.EmailFailed
		outcome.AddError("render email: %v", err)
		return
	}
	if err := s.mailer.Send(ctx, n); err != nil {
		outcome.Email = domain.EmailFailed
		outcome.AddError("send email to %s: %v", contact.Email, err)
		logger.Error("send email to %s: %v", contact.Email, err)
		return
	}

	outcome.Email = domain.EmailSent
	outcome.Recipient = contact.Email
	logger.Info("email sent to %s via %s", contact.Email, s.mailer.Transport())
}

// publish copies the submission's fixed column span to the destination sheet.
func (s *ReviewService) publish(ctx context.Context, kind domain.CorpusKind, sheet domain.SheetSettings, row int) error {
	layout := domain.LayoutFor(kind)

	values, err := s.sheets.ReadValues(ctx, sheet.SpreadsheetID, a1Range(sheet.SheetName, layout.SourceColumns))
	if err != nil {
		return fmt.Errorf("read source row: %w", err)
	}
	if len(values) == 0 {
		return fmt.Errorf("no data found in source sheet: %w", domain.ErrEmptyDataset)
	}
	if row-1 >= len(values) {
		return fmt.Errorf("%w: row %d", domain.ErrRowNotFound, row)
	}

	data := layout.Shape(values[row-1])
	dest := a1Range(layout.DestinationSheet, layout.DestinationColumns)
	return s.sheets.AppendValues(ctx, sheet.DestinationID, dest, [][]string{data})
}

func (s *ReviewService) record(ctx context.Context, outcome *domain.ReviewOutcome) {
	if s.log == nil {
		return
	}
	if err := s.log.Record(ctx, *outcome); err != nil {
		logger.Warn("record review outcome %s: %v", outcome.ID, err)
	}
}

// a1Range quotes a sheet name into an A1 range.
func a1Range(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}

// padTable splits header and data rows, right-padding every row to the widest.
func padTable(values [][]string) ([]string, [][]string) {
	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	pad := func(row []string) []string {
		out := make([]string, width)
		copy(out, row)
		return out
	}

	headers := pad(values[0])
	rows := make([][]string, 0, len(values)-1)
	for _, row := range values[1:] {
		rows = append(rows, pad(row))
	}
	return headers, rows
}

func buildRow(headers, cells []string, number int, ts time.Time) domain.ReviewRow {
	row := domain.ReviewRow{
		Number:    number,
		Cells:     make(map[string]string, len(headers)),
		Timestamp: ts,
	}
	for i, h := range headers {
		if h == "" {
			continue
		}
		if _, dup := row.Cells[h]; !dup {
			row.Cells[h] = cells[i]
		}
	}
	row.Status = currentStatus(row.Cell(domain.HeaderStatus))
	return row
}

// currentStatus reads a Status cell; unrecognised values count as pending.
func currentStatus(cell string) domain.ReviewStatus {
	status, err := domain.ParseReviewStatus(cell)
	if err != nil {
		logger.Debug("unrecognised status %q treated as pending", cell)
		return domain.StatusPending
	}
	return status
}

func emptyColumns(headers []string, rows []domain.ReviewRow) []string {
	var empty []string
	for i, h := range headers {
		name := h
		if name == "" {
			name = fmt.Sprintf("column %d", i+1)
		}
		blank := true
		for _, r := range rows {
			if strings.TrimSpace(r.Cells[h]) != "" {
				blank = false
				break
			}
		}
		if blank {
			empty = append(empty, name)
		}
	}
	return empty
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if strings.TrimSpace(v) == target {
			return i
		}
	}
	return -1
}
