package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown corpus kind or source type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Upstream data errors. These block rendering entirely.

	// ErrMissingColumn indicates an expected column is absent from a dataset header.
	ErrMissingColumn = errors.New("missing expected column")

	// ErrEmptyDataset indicates a source produced no usable rows.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNoTimestamps indicates no submission row carried a parseable timestamp.
	ErrNoTimestamps = errors.New("no parseable timestamps")

	// ErrSourceNotConfigured indicates a corpus or sheet location has not been set.
	ErrSourceNotConfigured = errors.New("source not configured")

	// Review queue errors.

	// ErrInvalidStatus indicates a status value outside {"", Accept, Reject}.
	ErrInvalidStatus = errors.New("invalid review status")

	// ErrAlreadyReviewed indicates a decision was attempted on a terminal row.
	ErrAlreadyReviewed = errors.New("row already reviewed")

	// ErrRowNotFound indicates a sheet row number outside the sheet's data.
	ErrRowNotFound = errors.New("row not found")

	// ErrColumnOutOfRange indicates a header position beyond column Z.
	ErrColumnOutOfRange = errors.New("column beyond Z is not addressable")

	// Notification errors.

	// ErrInvalidRecipient indicates a malformed recipient address.
	ErrInvalidRecipient = errors.New("invalid recipient address")

	// ErrMailerUnavailable indicates no mail transport is configured.
	ErrMailerUnavailable = errors.New("mail transport unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
