package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
	"github.com/custodia-labs/tristep/internal/vectorspace"
)

// mockSource serves fixed bytes and counts fetches.
type mockSource struct {
	mu      sync.Mutex
	content []byte
	fetches int
	err     error

	watchable bool
	changes   chan domain.SourceChange
}

func newMockSource(content string) *mockSource {
	return &mockSource{content: []byte(content)}
}

func (m *mockSource) setContent(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = []byte(content)
}

func (m *mockSource) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *mockSource) Type() domain.SourceType { return domain.SourceFile }

func (m *mockSource) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsWatch: m.watchable}
}

func (m *mockSource) Validate(context.Context, domain.SourceRef) error { return m.err }

func (m *mockSource) Fetch(_ context.Context, ref domain.SourceRef) (*domain.RawDataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RawDataset{Source: ref, MIMEType: "text/csv", Content: append([]byte(nil), m.content...)}, nil
}

func (m *mockSource) Close() error { return nil }

// mockWatchableSource adds change events to mockSource.
type mockWatchableSource struct {
	*mockSource
}

func (m mockWatchableSource) Watch(ctx context.Context, _ domain.SourceRef) (<-chan domain.SourceChange, error) {
	out := make(chan domain.SourceChange)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-m.changes:
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// mockFactory hands out the same source for every reference.
type mockFactory struct {
	source driven.CorpusSource
}

func (f *mockFactory) Create(context.Context, domain.SourceRef) (driven.CorpusSource, error) {
	return f.source, nil
}

func (f *mockFactory) Register(domain.SourceType, driven.SourceBuilder) {}

func (f *mockFactory) SupportedTypes() []domain.SourceType {
	return []domain.SourceType{domain.SourceFile}
}

// stubSettings returns fixed settings; other methods are unused.
type stubSettings struct {
	driving.SettingsService
	settings domain.AppSettings
}

func (s stubSettings) Get() (*domain.AppSettings, error) {
	settings := s.settings
	return &settings, nil
}

// stubIndexes serves a prebuilt index.
type stubIndexes struct {
	idx *CorpusIndex
	err error
}

func (s stubIndexes) Index(context.Context, domain.CorpusKind) (*CorpusIndex, error) {
	return s.idx, s.err
}

// newTestIndex fits an index over records whose Combined text is already clean.
func newTestIndex(t *testing.T, kind domain.CorpusKind, records []domain.Record) *CorpusIndex {
	t.Helper()
	for i := range records {
		records[i].Index = i
	}
	corpus := &domain.Corpus{Kind: kind, Hash: "test-hash", Records: records}
	space, matrix, err := vectorspace.Fit(corpus.Texts())
	require.NoError(t, err)
	return &CorpusIndex{Corpus: corpus, Space: space, Matrix: matrix}
}
