// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CorpusSource: Fetches raw dataset bytes (url, drive, file)
//   - SourceFactory: Creates sources from configured references
//   - Normaliser: Cleans a dataset into corpus records
//   - NormaliserRegistry: Selects the normaliser for a corpus kind
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CorpusSnapshotStore: Load history. Without it, status shows only in-memory state.
//   - Spreadsheet: Submission sheets. Without it, the review queue is disabled.
//   - Mailer: Notifications. Without it, emails are skipped with a warning.
//   - ReviewLog: Decision history. Without it, outcomes are not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
