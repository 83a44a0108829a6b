package driving

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// CorpusService loads, caches and refreshes the job and course datasets.
type CorpusService interface {
	// Load fetches the configured source and returns the corpus.
	// The fitted index is reused when the content hash is unchanged.
	Load(ctx context.Context, kind domain.CorpusKind) (*domain.Corpus, error)

	// Refresh drops the cached index and reloads from the source.
	Refresh(ctx context.Context, kind domain.CorpusKind) (*domain.Corpus, error)

	// Status reports cache and snapshot state for every corpus kind.
	Status(ctx context.Context) ([]domain.CorpusStatus, error)

	// Facets returns the selectable filter values of a corpus.
	Facets(ctx context.Context, kind domain.CorpusKind) (*domain.FacetOptions, error)
}
