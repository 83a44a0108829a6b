package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure ReviewLog implements the interface.
var _ driven.ReviewLog = (*ReviewLog)(nil)

// ReviewLog is an in-memory implementation of driven.ReviewLog.
type ReviewLog struct {
	mu       sync.RWMutex
	outcomes []domain.ReviewOutcome
}

// NewReviewLog creates a new in-memory review log.
func NewReviewLog() *ReviewLog {
	return &ReviewLog{}
}

// Record appends an outcome.
func (l *ReviewLog) Record(_ context.Context, outcome domain.ReviewOutcome) error {
	if outcome.ID == "" {
		return domain.ErrInvalidInput
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outcomes = append(l.outcomes, outcome)
	return nil
}

// List returns outcomes newest first.
func (l *ReviewLog) List(_ context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []domain.ReviewOutcome
	for i := len(l.outcomes) - 1; i >= 0; i-- {
		o := l.outcomes[i]
		if kind != "" && o.Kind != kind {
			continue
		}
		result = append(result, o)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
