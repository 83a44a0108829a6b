// Package web provides the HTTP(S) corpus source used for CSV export links.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// MaxDownloadSize caps the bytes read from one export (64MB).
const MaxDownloadSize = 64 * 1024 * 1024

// DefaultTimeout bounds a single download.
const DefaultTimeout = 2 * time.Minute

// Source downloads a CSV over HTTP.
type Source struct {
	client *http.Client
}

// New creates an HTTP source. A nil client uses one with DefaultTimeout.
func New(client *http.Client) *Source {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Source{client: client}
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceType {
	return domain.SourceURL
}

// Capabilities returns the source capabilities.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{}
}

// Validate checks the location is an absolute http(s) URL.
// It does not contact the server.
func (s *Source) Validate(_ context.Context, ref domain.SourceRef) error {
	u, err := url.Parse(ref.Location)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q is not http or https", domain.ErrInvalidInput, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: url has no host", domain.ErrInvalidInput)
	}
	return nil
}

// Fetch downloads the export.
func (s *Source) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawDataset, error) {
	if err := s.Validate(ctx, ref); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.Location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("download %s: %w", ref.Location, domain.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("download %s: %w", ref.Location, domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("download %s: unexpected status %d", ref.Location, resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &domain.RawDataset{
		Source:   ref,
		MIMEType: resp.Header.Get("Content-Type"),
		Content:  content,
	}, nil
}

// Close releases idle connections.
func (s *Source) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
