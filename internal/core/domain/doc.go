// Package domain defines the core business entities for TriStep.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: A cleaned job posting or course row with its searchable text
//   - Corpus: A loaded dataset identified by source and content hash
//   - RankedResult: A record annotated with similarity and blended scores
//   - Page: A five-item window over an ordered result list
//   - ReviewRow: A user submission awaiting an Accept/Reject decision
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
