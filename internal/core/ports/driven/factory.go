package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// SourceBuilder creates a CorpusSource for a reference.
type SourceBuilder func(ctx context.Context, ref domain.SourceRef) (CorpusSource, error)

// SourceFactory creates corpus sources from configured references.
// It maintains a registry of source types and their builders.
type SourceFactory interface {
	// Create returns a CorpusSource for the given reference.
	// Returns ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, ref domain.SourceRef) (CorpusSource, error)

	// Register adds a builder for the given type.
	Register(sourceType domain.SourceType, builder SourceBuilder)

	// SupportedTypes returns all registered source types.
	SupportedTypes() []domain.SourceType
}
