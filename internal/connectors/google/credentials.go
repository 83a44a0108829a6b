package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// OAuth2 scopes requested by the adapters.
const (
	SheetsScope    = "https://www.googleapis.com/auth/spreadsheets"
	DriveReadScope = "https://www.googleapis.com/auth/drive.readonly"
	GmailSendScope = "https://www.googleapis.com/auth/gmail.send"
)

// ErrNoCredentials indicates google.credentials_file is not set.
var ErrNoCredentials = fmt.Errorf("google credentials file not configured: %w", domain.ErrSourceNotConfigured)

// LoadCredentials reads the service account key and returns a token source
// for the given scopes. When settings.Subject is set the token impersonates
// that user, which Gmail requires.
func LoadCredentials(ctx context.Context, settings domain.GoogleSettings, scopes ...string) (oauth2.TokenSource, error) {
	if !settings.IsConfigured() {
		return nil, ErrNoCredentials
	}

	data, err := os.ReadFile(settings.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	return TokenSourceFromJSON(ctx, data, settings.Subject, scopes...)
}

// TokenSourceFromJSON builds a token source from a service account key.
func TokenSourceFromJSON(ctx context.Context, data []byte, subject string, scopes ...string) (oauth2.TokenSource, error) {
	if subject == "" {
		creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		return creds.TokenSource, nil
	}

	cfg, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	cfg.Subject = subject
	return cfg.TokenSource(ctx), nil
}
