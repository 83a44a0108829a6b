package driving

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// ReviewService drives the submission review queue.
type ReviewService interface {
	// List returns the submissions of one month.
	// Returns ErrNoTimestamps when no row has a parseable timestamp.
	List(ctx context.Context, kind domain.CorpusKind, period domain.ReviewPeriod) (*domain.ReviewSheet, error)

	// Decide applies Accept or Reject to one sheet row.
	// Returns ErrAlreadyReviewed for rows already decided. Failures of
	// individual side effects are reported in the outcome, not as an error.
	Decide(ctx context.Context, kind domain.CorpusKind, row int, status domain.ReviewStatus) (*domain.ReviewOutcome, error)

	// Apply decides each row in ascending row order. A failing row never
	// aborts the batch; its error is recorded in its outcome.
	Apply(ctx context.Context, kind domain.CorpusKind, decisions []domain.Decision) ([]domain.ReviewOutcome, error)

	// Log returns recorded outcomes, newest first.
	Log(ctx context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error)
}
