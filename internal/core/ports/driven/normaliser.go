package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// Normaliser transforms a raw dataset into cleaned corpus records.
// Each normaliser handles exactly one corpus kind.
type Normaliser interface {
	// Kind returns the corpus kind this normaliser handles.
	Kind() domain.CorpusKind

	// Normalise parses and cleans the dataset.
	// Returns ErrMissingColumn when a required header is absent.
	Normalise(ctx context.Context, raw *domain.RawDataset) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Records are the cleaned rows, indexed from zero in source order.
	Records []domain.Record

	// Skipped counts malformed CSV rows.
	Skipped int

	// Duplicates counts rows dropped by deduplication.
	Duplicates int
}
