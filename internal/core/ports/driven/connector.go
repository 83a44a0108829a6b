package driven

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// CorpusSource fetches raw dataset bytes from one kind of location.
// Each source type (url, drive, file) implements this interface.
type CorpusSource interface {
	// Type returns the source type identifier.
	Type() domain.SourceType

	// Capabilities returns what this source supports.
	Capabilities() SourceCapabilities

	// Validate checks if the reference can be fetched.
	// Performs a lightweight check (e.g., path exists, file metadata readable).
	// Returns nil if ready, error describing the problem otherwise.
	Validate(ctx context.Context, ref domain.SourceRef) error

	// Fetch downloads the full dataset.
	Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawDataset, error)

	// Close releases resources.
	Close() error
}

// WatchableSource is implemented by sources that can push change events.
// Only available if SupportsWatch is true.
type WatchableSource interface {
	CorpusSource

	// Watch emits a change whenever the data behind ref changes.
	// The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, ref domain.SourceRef) (<-chan domain.SourceChange, error)
}

// SourceCapabilities describes what a source supports.
type SourceCapabilities struct {
	// SupportsWatch indicates the source can push change events.
	SupportsWatch bool

	// RequiresAuth indicates the source needs Google credentials.
	RequiresAuth bool

	// SupportsRateLimiting indicates the source handles rate limiting internally.
	SupportsRateLimiting bool
}
