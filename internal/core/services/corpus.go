package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
	"github.com/custodia-labs/tristep/internal/logger"
	"github.com/custodia-labs/tristep/internal/vectorspace"
)

// Ensure CorpusService implements the interfaces.
var (
	_ driving.CorpusService = (*CorpusService)(nil)
	_ IndexProvider         = (*CorpusService)(nil)
)

// CorpusIndex is a loaded corpus with its fitted vector space.
// It is immutable once built and safe to share.
type CorpusIndex struct {
	Corpus *domain.Corpus
	Space  *vectorspace.Space
	Matrix *vectorspace.Matrix
}

// IndexProvider returns the fitted index of a corpus.
type IndexProvider interface {
	Index(ctx context.Context, kind domain.CorpusKind) (*CorpusIndex, error)
}

// CorpusService loads corpora from their sources and caches fitted indexes
// keyed by source identity and content hash. Entries are only dropped by
// Refresh or by a change event from a watched source.
type CorpusService struct {
	settings    driving.SettingsService
	factory     driven.SourceFactory
	normalisers driven.NormaliserRegistry
	snapshots   driven.CorpusSnapshotStore

	// loadMu serialises fetch+fit so concurrent callers share one load.
	loadMu sync.Mutex

	mu      sync.RWMutex
	cache   map[domain.CorpusKind]*CorpusIndex
	watches map[domain.CorpusKind]watch

	now func() time.Time
}

type watch struct {
	identity string
	cancel   context.CancelFunc
}

// NewCorpusService creates a corpus service.
// snapshots may be nil.
func NewCorpusService(
	settings driving.SettingsService,
	factory driven.SourceFactory,
	normalisers driven.NormaliserRegistry,
	snapshots driven.CorpusSnapshotStore,
) *CorpusService {
	return &CorpusService{
		settings:    settings,
		factory:     factory,
		normalisers: normalisers,
		snapshots:   snapshots,
		cache:       make(map[domain.CorpusKind]*CorpusIndex),
		watches:     make(map[domain.CorpusKind]watch),
		now:         time.Now,
	}
}

// Load fetches the configured source and returns the corpus. The fitted
// index is reused when the source identity and content hash are unchanged.
func (s *CorpusService) Load(ctx context.Context, kind domain.CorpusKind) (*domain.Corpus, error) {
	idx, err := s.load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return idx.Corpus, nil
}

// Index returns the cached index for kind, loading it on first use.
func (s *CorpusService) Index(ctx context.Context, kind domain.CorpusKind) (*CorpusIndex, error) {
	if idx := s.cached(kind); idx != nil {
		return idx, nil
	}
	return s.load(ctx, kind)
}

// Refresh drops the cached index and reloads from the source.
func (s *CorpusService) Refresh(ctx context.Context, kind domain.CorpusKind) (*domain.Corpus, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: corpus kind %q", domain.ErrUnsupportedType, kind)
	}

	s.mu.Lock()
	delete(s.cache, kind)
	s.mu.Unlock()
	logger.Info("%s corpus cache dropped", kind)

	return s.Load(ctx, kind)
}

// Status reports cache and snapshot state for every corpus kind.
func (s *CorpusService) Status(ctx context.Context) ([]domain.CorpusStatus, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	statuses := make([]domain.CorpusStatus, 0, len(domain.AllCorpusKinds()))
	for _, kind := range domain.AllCorpusKinds() {
		st := domain.CorpusStatus{
			Kind:   kind,
			Source: settings.Corpus.Source(kind),
		}

		s.mu.RLock()
		_, st.Cached = s.cache[kind]
		_, st.Watched = s.watches[kind]
		s.mu.RUnlock()

		if s.snapshots != nil {
			snap, err := s.snapshots.Get(ctx, kind)
			switch {
			case err == nil:
				st.Snapshot = snap
			case errors.Is(err, domain.ErrNotFound):
			default:
				return nil, fmt.Errorf("get %s snapshot: %w", kind, err)
			}
		}

		statuses = append(statuses, st)
	}

	return statuses, nil
}

// Facets returns the selectable filter values of a corpus.
func (s *CorpusService) Facets(ctx context.Context, kind domain.CorpusKind) (*domain.FacetOptions, error) {
	idx, err := s.Index(ctx, kind)
	if err != nil {
		return nil, err
	}
	opts := domain.BuildFacetOptions(idx.Corpus)
	return &opts, nil
}

// Close stops all source watches.
func (s *CorpusService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for kind, w := range s.watches {
		w.cancel()
		delete(s.watches, kind)
	}
	return nil
}

func (s *CorpusService) cached(kind domain.CorpusKind) *CorpusIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[kind]
}

func (s *CorpusService) load(ctx context.Context, kind domain.CorpusKind) (*CorpusIndex, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: corpus kind %q", domain.ErrUnsupportedType, kind)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	ref := settings.Corpus.Source(kind)
	if !ref.IsConfigured() {
		return nil, fmt.Errorf("%s corpus: %w", kind, domain.ErrSourceNotConfigured)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	logger.Section("Load " + kind.String())
	logger.Debug("source: %s", ref.Identity())

	src, err := s.factory.Create(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("create %s source: %w", ref.Type, err)
	}
	defer func() { _ = src.Close() }()

	raw, err := src.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch %s corpus: %w", kind, err)
	}
	raw.Kind = kind
	raw.Source = ref
	hash := raw.Hash()

	if idx := s.cached(kind); idx != nil && idx.Corpus.Hash == hash && idx.Corpus.Source == ref {
		logger.Debug("content unchanged (sha256 %s), reusing index", shortHash(hash))
		return idx, nil
	}

	idx, err := s.build(ctx, raw, hash)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[kind] = idx
	s.mu.Unlock()

	s.saveSnapshot(ctx, idx)
	s.watch(kind, ref, src)

	return idx, nil
}

func (s *CorpusService) build(ctx context.Context, raw *domain.RawDataset, hash string) (*CorpusIndex, error) {
	defer logger.Timed("build " + raw.Kind.String() + " index")()

	result, err := s.normalisers.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise %s corpus: %w", raw.Kind, err)
	}
	if result.Skipped > 0 {
		logger.Warn("%d malformed %s rows skipped", result.Skipped, raw.Kind)
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%s corpus: %w", raw.Kind, domain.ErrEmptyDataset)
	}

	corpus := &domain.Corpus{
		Kind:       raw.Kind,
		Source:     raw.Source,
		Hash:       hash,
		Records:    result.Records,
		Skipped:    result.Skipped,
		Duplicates: result.Duplicates,
		LoadedAt:   s.now(),
	}

	space, matrix, err := vectorspace.Fit(corpus.Texts())
	if err != nil {
		return nil, fmt.Errorf("fit %s corpus: %w", raw.Kind, err)
	}

	logger.Info("%s corpus: %d records, %d duplicates, vocabulary %d",
		raw.Kind, corpus.Len(), corpus.Duplicates, space.Len())

	return &CorpusIndex{Corpus: corpus, Space: space, Matrix: matrix}, nil
}

func (s *CorpusService) saveSnapshot(ctx context.Context, idx *CorpusIndex) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, idx.Corpus.Snapshot(idx.Space.Len())); err != nil {
		logger.Warn("save %s snapshot: %v", idx.Corpus.Kind, err)
	}
}

// watch subscribes to change events when the source supports them.
// A change drops the cached index so the next request reloads.
func (s *CorpusService) watch(kind domain.CorpusKind, ref domain.SourceRef, src driven.CorpusSource) {
	ws, ok := src.(driven.WatchableSource)
	if !ok || !src.Capabilities().SupportsWatch {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if w, exists := s.watches[kind]; exists {
		if w.identity == ref.Identity() {
			return
		}
		w.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := ws.Watch(ctx, ref)
	if err != nil {
		cancel()
		logger.Warn("watch %s: %v", ref.Identity(), err)
		return
	}
	s.watches[kind] = watch{identity: ref.Identity(), cancel: cancel}

	go func() {
		for change := range changes {
			logger.Info("%s source %s, dropping cached index", kind, change.Type)
			s.invalidate(kind, change.Source)
		}
	}()
}

func (s *CorpusService) invalidate(kind domain.CorpusKind, ref domain.SourceRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.cache[kind]; ok && idx.Corpus.Source.Identity() == ref.Identity() {
		delete(s.cache, kind)
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
