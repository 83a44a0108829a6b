package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// NormaliserRegistry selects the normaliser for a dataset by its kind.
type NormaliserRegistry interface {
	// Normalise transforms a raw dataset using the normaliser for raw.Kind.
	// Returns ErrUnsupportedType if none is registered.
	Normalise(ctx context.Context, raw *domain.RawDataset) (*NormaliseResult, error)

	// Register adds a normaliser to the registry, replacing any for the same kind.
	Register(normaliser Normaliser)

	// SupportedKinds returns all kinds that can be normalised.
	SupportedKinds() []domain.CorpusKind
}
