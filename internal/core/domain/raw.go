package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// RawDataset represents opaque CSV bytes fetched by a corpus source.
// It is the source's output before normalisation.
type RawDataset struct {
	// Kind is the corpus the bytes belong to.
	Kind CorpusKind

	// Source is where the bytes were fetched from.
	Source SourceRef

	// MIMEType is the content type reported by the source (e.g., "text/csv").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Hash returns the hex SHA-256 of the content.
func (r *RawDataset) Hash() string {
	sum := sha256.Sum256(r.Content)
	return hex.EncodeToString(sum[:])
}

// ChangeType represents the type of source change.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns a short label for logs.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return UnknownValue
	}
}

// SourceChange is emitted by watchable sources when the underlying data changes.
type SourceChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Source is the affected reference.
	Source SourceRef
}
