// Package drive provides the Google Drive corpus source.
package drive

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"

	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CorpusSource = (*Source)(nil)

// Google Workspace MIME types.
const (
	MimeTypeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeTypeFolder      = "application/vnd.google-apps.folder"
)

// ExportMimeCSV is the export format for spreadsheets.
const ExportMimeCSV = "text/csv"

// MaxExportSize is the maximum size for downloaded content (64MB).
const MaxExportSize = 64 * 1024 * 1024

// fileFields are the metadata fields requested for a corpus file.
const fileFields = "id,name,mimeType,size,trashed"

// Source downloads a Drive file, exporting Google Sheets as CSV.
// The Location of a drive reference is the file ID.
type Source struct {
	svc     *drive.Service
	limiter *google.RateLimiter
}

// New creates a Drive source.
func New(svc *drive.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
}

// Type returns the source type identifier.
func (s *Source) Type() domain.SourceType {
	return domain.SourceDrive
}

// Capabilities returns the source capabilities.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		RequiresAuth:         true,
		SupportsRateLimiting: true,
	}
}

// Validate checks the file exists and is downloadable.
func (s *Source) Validate(ctx context.Context, ref domain.SourceRef) error {
	_, err := s.metadata(ctx, ref.Location)
	return err
}

// Fetch downloads the file content.
func (s *Source) Fetch(ctx context.Context, ref domain.SourceRef) (*domain.RawDataset, error) {
	file, err := s.metadata(ctx, ref.Location)
	if err != nil {
		return nil, err
	}

	content, mimeType, err := s.fetchFileContent(ctx, file)
	if err != nil {
		return nil, err
	}

	return &domain.RawDataset{
		Source:   ref,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}

// Close releases resources.
func (s *Source) Close() error {
	return nil
}

func (s *Source) metadata(ctx context.Context, fileID string) (*drive.File, error) {
	if fileID == "" {
		return nil, fmt.Errorf("%w: empty drive file id", domain.ErrInvalidInput)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	file, err := s.svc.Files.Get(fileID).Fields(fileFields).SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get drive file %s: %w", fileID, s.limiter.Observe(err))
	}

	switch {
	case file.Trashed:
		return nil, fmt.Errorf("drive file %s is trashed: %w", fileID, domain.ErrNotFound)
	case file.MimeType == MimeTypeFolder:
		return nil, fmt.Errorf("%w: drive file %s is a folder", domain.ErrInvalidInput, fileID)
	}
	return file, nil
}

// fetchFileContent exports sheets as CSV and downloads anything else as is.
func (s *Source) fetchFileContent(ctx context.Context, file *drive.File) ([]byte, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	if file.MimeType == MimeTypeGoogleSheet {
		resp, err := s.svc.Files.Export(file.Id, ExportMimeCSV).Context(ctx).Download()
		if err != nil {
			return nil, "", fmt.Errorf("export %s: %w", file.Name, s.limiter.Observe(err))
		}
		defer resp.Body.Close()

		data, err := readLimited(resp.Body)
		return data, ExportMimeCSV, err
	}

	if file.Size > MaxExportSize {
		return nil, "", fmt.Errorf("%w: %s is %d bytes, limit %d", domain.ErrInvalidInput, file.Name, file.Size, MaxExportSize)
	}

	resp, err := s.svc.Files.Get(file.Id).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", file.Name, s.limiter.Observe(err))
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body)
	return data, file.MimeType, err
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxExportSize))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return data, nil
}
