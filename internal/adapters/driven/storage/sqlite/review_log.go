package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// reviewLog implements driven.ReviewLog.
type reviewLog struct {
	store *Store
}

var _ driven.ReviewLog = (*reviewLog)(nil)

const reviewColumns = `id, kind, row_number, status, status_updated, email, recipient,
	appended, errors, warnings, decided_at`

// Record appends an outcome.
func (l *reviewLog) Record(ctx context.Context, o domain.ReviewOutcome) error {
	if o.ID == "" {
		return fmt.Errorf("%w: outcome id is required", domain.ErrInvalidInput)
	}

	errorsJSON, err := marshalStrings(o.Errors)
	if err != nil {
		return fmt.Errorf("marshalling errors: %w", err)
	}
	warningsJSON, err := marshalStrings(o.Warnings)
	if err != nil {
		return fmt.Errorf("marshalling warnings: %w", err)
	}

	_, err = l.store.db.ExecContext(ctx, `
		INSERT INTO review_log (`+reviewColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, string(o.Kind), o.Row, string(o.Status), o.StatusUpdated, string(o.Email),
		o.Recipient, o.Appended, errorsJSON, warningsJSON, o.DecidedAt.UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("%w: outcome %s already recorded", domain.ErrInvalidInput, o.ID)
		}
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// List returns outcomes newest first.
func (l *reviewLog) List(ctx context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_log`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY seq DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying review log: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.ReviewOutcome //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			o                    domain.ReviewOutcome
			kindStr, status      string
			email                string
			errorsJSON, warnJSON string
		)
		if err := rows.Scan(&o.ID, &kindStr, &o.Row, &status, &o.StatusUpdated, &email,
			&o.Recipient, &o.Appended, &errorsJSON, &warnJSON, &o.DecidedAt); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Kind = domain.CorpusKind(kindStr)
		o.Status = domain.ReviewStatus(status)
		o.Email = domain.EmailOutcome(email)
		if err := json.Unmarshal([]byte(errorsJSON), &o.Errors); err != nil {
			return nil, fmt.Errorf("unmarshaling errors: %w", err)
		}
		if err := json.Unmarshal([]byte(warnJSON), &o.Warnings); err != nil {
			return nil, fmt.Errorf("unmarshaling warnings: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating review log: %w", err)
	}
	return outcomes, nil
}

// marshalStrings encodes a nil slice as [] so reads round-trip to empty.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
