package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// ErrNoUserToken indicates no "settings login" has been completed.
var ErrNoUserToken = errors.New("google login not completed (run: tristep settings login)")

// LoadClientConfig reads an OAuth desktop client JSON downloaded from the
// Google Cloud console.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read oauth client: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	return cfg, nil
}

// LoadUserToken returns a token source for the signed-in user. Refreshed
// tokens are written back to settings.TokenFile.
func LoadUserToken(ctx context.Context, settings domain.GoogleSettings, scopes ...string) (oauth2.TokenSource, error) {
	if !settings.HasUserToken() {
		return nil, ErrNoUserToken
	}

	cfg, err := LoadClientConfig(settings.ClientFile, scopes...)
	if err != nil {
		return nil, err
	}
	tok, err := ReadToken(settings.TokenFile)
	if err != nil {
		return nil, err
	}

	return &savingTokenSource{
		base: cfg.TokenSource(ctx, tok),
		path: settings.TokenFile,
		last: tok.AccessToken,
	}, nil
}

// ReadToken loads a token saved by SaveToken.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if tok.RefreshToken == "" && tok.AccessToken == "" {
		return nil, ErrNoUserToken
	}
	return &tok, nil
}

// SaveToken writes tok as JSON readable only by the owner.
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// savingTokenSource persists the token whenever the access token changes.
type savingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := SaveToken(s.path, tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}
