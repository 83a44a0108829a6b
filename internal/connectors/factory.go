package connectors

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/custodia-labs/tristep/internal/connectors/filesystem"
	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/connectors/google/drive"
	"github.com/custodia-labs/tristep/internal/connectors/web"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// GoogleSettingsFunc returns the current Google credentials configuration.
// It is called each time a Drive source is built so settings changes apply
// without a restart.
type GoogleSettingsFunc func() (domain.GoogleSettings, error)

// Factory creates corpus sources by type.
type Factory struct {
	mu       sync.RWMutex
	builders map[domain.SourceType]driven.SourceBuilder
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[domain.SourceType]driven.SourceBuilder),
	}
}

// NewDefaultFactory registers the url, file and drive sources.
// A nil client uses the web source default.
func NewDefaultFactory(client *http.Client, credentials GoogleSettingsFunc) *Factory {
	f := NewFactory()

	f.Register(domain.SourceURL, func(_ context.Context, _ domain.SourceRef) (driven.CorpusSource, error) {
		return web.New(client), nil
	})
	f.Register(domain.SourceFile, func(_ context.Context, _ domain.SourceRef) (driven.CorpusSource, error) {
		return filesystem.New(), nil
	})
	f.Register(domain.SourceDrive, driveBuilder(credentials))

	return f
}

// Register adds a builder, replacing any registered for the same type.
func (f *Factory) Register(sourceType domain.SourceType, builder driven.SourceBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[sourceType] = builder
}

// Create builds the source for ref.Type.
func (f *Factory) Create(ctx context.Context, ref domain.SourceRef) (driven.CorpusSource, error) {
	f.mu.RLock()
	builder, ok := f.builders[ref.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: source type %q", domain.ErrUnsupportedType, ref.Type)
	}

	src, err := builder(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("create %s source: %w", ref.Type, err)
	}
	return src, nil
}

// SupportedTypes returns the registered types in lexical order.
func (f *Factory) SupportedTypes() []domain.SourceType {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func driveBuilder(credentials GoogleSettingsFunc) driven.SourceBuilder {
	return func(ctx context.Context, _ domain.SourceRef) (driven.CorpusSource, error) {
		if credentials == nil {
			return nil, google.ErrNoCredentials
		}
		settings, err := credentials()
		if err != nil {
			return nil, err
		}

		ts, err := google.LoadCredentials(ctx, settings, google.DriveReadScope)
		if err != nil {
			return nil, err
		}
		svc, err := google.NewDriveService(ctx, ts)
		if err != nil {
			return nil, fmt.Errorf("drive service: %w", err)
		}
		return drive.New(svc), nil
	}
}
