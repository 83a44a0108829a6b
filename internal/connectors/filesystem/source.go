// Package filesystem provides the local file corpus source.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/logger"
)

// Ensure Source implements the interfaces.
var (
	_ driven.CorpusSource    = (*Source)(nil)
	_ driven.WatchableSource = (*Source)(nil)
)

// ErrClosed is returned when watching after Close.
var ErrClosed = errors.New("filesystem source closed")

// Source reads a CSV file from disk and reports changes to it.
type Source struct {
	mu     sync.Mutex
	closed bool
}

// New creates a filesystem source.
func New() *Source {
	return &Source{}
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceType {
	return domain.SourceFile
}

// Capabilities returns the source capabilities.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{SupportsWatch: true}
}

// Validate checks that the location is a readable regular file.
func (s *Source) Validate(_ context.Context, ref domain.SourceRef) error {
	path := ResolvePath(ref.Location)
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return f.Close()
}

// Fetch reads the whole file.
func (s *Source) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawDataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := ResolvePath(ref.Location)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.RawDataset{
		Source:   ref,
		MIMEType: detectMIMEType(path),
		Content:  content,
	}, nil
}

// Watch emits a change whenever the file is created, written, removed or
// renamed. The parent directory is watched so editors that replace the
// file atomically are still seen. The channel closes when ctx is done.
func (s *Source) Watch(ctx context.Context, ref domain.SourceRef) (<-chan domain.SourceChange, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	path := ResolvePath(ref.Location)
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("watch directory %s: not accessible", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changes := make(chan domain.SourceChange)
	go func() {
		defer close(changes)
		defer func() { _ = watcher.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				change := handleFsEvent(event, path, ref)
				if change == nil {
					continue
				}
				select {
				case changes <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", path, err)
			}
		}
	}()

	return changes, nil
}

// Close prevents new watches. Running watches end with their context.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// handleFsEvent maps an event on path to a change. Events for other
// files in the directory and pure chmods are ignored.
func handleFsEvent(event fsnotify.Event, path string, ref domain.SourceRef) *domain.SourceChange {
	if filepath.Clean(event.Name) != path {
		return nil
	}

	var change domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		change = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		change = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		change = domain.ChangeDeleted
	default:
		return nil
	}

	return &domain.SourceChange{Type: change, Source: ref}
}

func detectMIMEType(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "text/csv"
}
