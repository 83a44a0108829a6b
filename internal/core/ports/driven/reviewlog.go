package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// ReviewLog records every applied review decision.
type ReviewLog interface {
	// Record appends an outcome. outcome.ID must be set.
	Record(ctx context.Context, outcome domain.ReviewOutcome) error

	// List returns the newest outcomes first, optionally filtered by kind.
	// An empty kind returns all kinds; limit <= 0 means no limit.
	List(ctx context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error)
}
