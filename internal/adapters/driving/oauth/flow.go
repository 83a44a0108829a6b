package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/tristep/internal/logger"
)

// DefaultTimeout bounds how long Authorize waits for the browser redirect.
const DefaultTimeout = 5 * time.Minute

// Flow runs the installed-app authorization code flow with PKCE over a
// loopback redirect.
type Flow struct {
	// Config is the OAuth client. Its RedirectURL is replaced.
	Config *oauth2.Config

	// Open launches the browser. Nil only prints the URL.
	Open func(url string) error

	// Out receives the authorization URL.
	Out io.Writer

	// Timeout overrides DefaultTimeout.
	Timeout time.Duration
}

// Authorize returns a token with offline access for f.Config.Scopes.
func (f *Flow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	if f.Config == nil {
		return nil, errors.New("oauth client not configured")
	}

	state, err := NewState()
	if err != nil {
		return nil, err
	}
	verifier := oauth2.GenerateVerifier()

	srv := NewCallbackServer(0, state)
	if err := srv.Start(); err != nil {
		return nil, err
	}
	defer func() {
		if err := srv.Stop(); err != nil {
			logger.Debug("oauth: stop callback server: %v", err)
		}
	}()

	cfg := *f.Config
	cfg.RedirectURL = srv.RedirectURI()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	if f.Out != nil {
		fmt.Fprintf(f.Out, "Open this URL to authorise TriStep:\n\n  %s\n\n", authURL)
	}
	if f.Open != nil {
		if err := f.Open(authURL); err != nil {
			logger.Warn("oauth: could not open browser: %v", err)
		}
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	code, err := srv.Wait(waitCtx)
	if err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	if tok.RefreshToken == "" {
		return nil, errors.New("no refresh token returned; revoke TriStep's access in your Google account and retry")
	}
	return tok, nil
}
