package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

const testClientJSON = `{
	"installed": {
		"client_id": "tristep-test.apps.googleusercontent.com",
		"client_secret": "shh",
		"auth_uri": "https://accounts.google.com/o/oauth2/auth",
		"token_uri": "https://oauth2.googleapis.com/token",
		"redirect_uris": ["http://localhost"]
	}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadClientConfig(t *testing.T) {
	cfg, err := LoadClientConfig(writeFile(t, "client.json", testClientJSON), GmailSendScope)

	require.NoError(t, err)
	assert.Equal(t, "tristep-test.apps.googleusercontent.com", cfg.ClientID)
	assert.Equal(t, []string{GmailSendScope}, cfg.Scopes)
	assert.Equal(t, "https://oauth2.googleapis.com/token", cfg.Endpoint.TokenURL)
}

func TestLoadClientConfig_Invalid(t *testing.T) {
	_, err := LoadClientConfig(writeFile(t, "client.json", "{}"), GmailSendScope)
	assert.Error(t, err)

	_, err = LoadClientConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveAndReadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveToken(path, tok))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := ReadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))
}

func TestReadToken_Empty(t *testing.T) {
	_, err := ReadToken(writeFile(t, "token.json", "{}"))
	assert.ErrorIs(t, err, ErrNoUserToken)
}

func TestLoadUserToken_NotLoggedIn(t *testing.T) {
	_, err := LoadUserToken(context.Background(), domain.GoogleSettings{}, GmailSendScope)
	assert.ErrorIs(t, err, ErrNoUserToken)
}

func TestLoadUserToken_ValidTokenIsNotRewritten(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, SaveToken(tokenPath, &oauth2.Token{
		AccessToken:  "still-valid",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}))
	before, err := os.ReadFile(tokenPath)
	require.NoError(t, err)

	ts, err := LoadUserToken(context.Background(), domain.GoogleSettings{
		ClientFile: writeFile(t, "client.json", testClientJSON),
		TokenFile:  tokenPath,
	}, GmailSendScope)
	require.NoError(t, err)

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "still-valid", tok.AccessToken)

	after, err := os.ReadFile(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

type stubTokenSource struct{ tok *oauth2.Token }

func (s stubTokenSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestSavingTokenSource_PersistsRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	ts := &savingTokenSource{
		base: stubTokenSource{tok: &oauth2.Token{AccessToken: "refreshed", RefreshToken: "r"}},
		path: path,
		last: "old",
	}

	_, err := ts.Token()
	require.NoError(t, err)

	got, err := ReadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refreshed", got.AccessToken)
}
