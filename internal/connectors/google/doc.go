// Package google provides shared infrastructure for the Google API adapters.
//
// It contains the pieces used by the drive, sheets and gmail packages:
//   - service-account credential loading and service factories
//   - classification of common Google API errors (401, 403, 404, 429)
//   - rate limiting to respect per-user API quotas
//
// # Usage
//
//	creds, err := google.LoadCredentials(ctx, settings.Google, google.SheetsScope)
//	svc, err := google.NewSheetsService(ctx, creds)
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/spreadsheets (review queue read/write)
//   - https://www.googleapis.com/auth/drive.readonly (drive corpus sources)
//   - https://www.googleapis.com/auth/gmail.send (decision notifications)
//
// Gmail sends need domain-wide delegation; the impersonated user is
// google.subject in the settings.
package google
