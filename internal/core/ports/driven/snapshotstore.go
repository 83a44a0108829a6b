package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// CorpusSnapshotStore persists the summary of the last successful load per corpus.
type CorpusSnapshotStore interface {
	// Save replaces the snapshot for snap.Kind.
	Save(ctx context.Context, snap domain.CorpusSnapshot) error

	// Get returns the snapshot for kind.
	// Returns ErrNotFound if no load has been recorded.
	Get(ctx context.Context, kind domain.CorpusKind) (*domain.CorpusSnapshot, error)

	// List returns every stored snapshot ordered by kind.
	List(ctx context.Context) ([]domain.CorpusSnapshot, error)
}
