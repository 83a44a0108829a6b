package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/normalisers/courses"
	"github.com/custodia-labs/tristep/internal/normalisers/jobs"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches datasets to the normaliser registered for their kind.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.CorpusKind]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[domain.CorpusKind]driven.Normaliser),
	}
}

// NewDefaultRegistry creates a registry with the job and course normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(jobs.New())
	r.Register(courses.New())
	return r
}

// Register adds a normaliser, replacing any registered for the same kind.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[n.Kind()] = n
}

// Normalise transforms raw with the normaliser for raw.Kind.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDataset) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	n, ok := r.normalisers[raw.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no normaliser for %q", domain.ErrUnsupportedType, raw.Kind)
	}

	return n.Normalise(ctx, raw)
}

// SupportedKinds returns all registered kinds in lexical order.
func (r *Registry) SupportedKinds() []domain.CorpusKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]domain.CorpusKind, 0, len(r.normalisers))
	for k := range r.normalisers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
