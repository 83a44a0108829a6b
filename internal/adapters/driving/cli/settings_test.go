package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSettingsCmd_ShowsSections(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Mail.Username = "admin@example.com"
	ts.settings.settings.Mail.Password = "app-password-1234"
	ts.settings.settings.Mail.From = "admin@example.com"
	ts.settings.settings.Ranking.CourseBlend = true
	ts.settings.settings.Review.Jobs.SpreadsheetID = "sheet-123"

	out, err := runCommand(nil, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Corpus]")
	assert.Contains(t, out, "jobs: url "+domain.DefaultJobsCSVURL)
	assert.Contains(t, out, "Course blend: on")
	assert.Contains(t, out, "Spreadsheet: sheet-123")
	assert.Contains(t, out, "Credentials: (not set)")
	assert.Contains(t, out, "Transport: SMTP relay (STARTTLS)")
	assert.Contains(t, out, "Server: smtp.gmail.com:587")
	assert.Contains(t, out, "Password: app-...1234")
	assert.NotContains(t, out, "app-password-1234")
	assert.Contains(t, out, "From: TRISTEP Admin <admin@example.com>")
	assert.Contains(t, out, "Status: configured")
	assert.NotContains(t, out, "Warning:")
}

func TestSettingsShowCmd_ValidationWarning(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.validateErr = errors.New("mail transport \"smtp\" is not fully configured")

	out, err := runCommand(nil, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Status: not configured")
	assert.Contains(t, out, "Warning: mail transport")
}

func TestSettingsSetSourceCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(nil, "settings", "set", "source", "jobs", "FILE", "/data/jobs.csv")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.source)
	assert.Equal(t, domain.SourceRef{Type: domain.SourceFile, Location: "/data/jobs.csv"}, *ts.settings.source)
	assert.Contains(t, out, "jobs corpus source set to file:/data/jobs.csv")
}

func TestSettingsSetSourceCmd_Rejected(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.err = domain.ErrInvalidInput

	_, err := runCommand(nil, "settings", "set", "source", "courses", "ftp", "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsSetSheetCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(nil, "settings", "set", "sheet", "courses", "--spreadsheet", "abc", "--destination", "dst")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.sheet)
	assert.Equal(t, domain.SheetSettings{SpreadsheetID: "abc", DestinationID: "dst"}, *ts.settings.sheet)
	assert.Contains(t, out, "courses review sheet updated")
}

func TestSettingsSetSheetCmd_NothingToChange(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "settings", "set", "sheet", "jobs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
	assert.Nil(t, ts.settings.sheet)
}

func TestSettingsSetBlendCmd(t *testing.T) {
	tests := []struct {
		arg      string
		expected bool
		wantErr  bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"true", true, false},
		{"0", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()

			_, err := runCommand(nil, "settings", "set", "blend", tt.arg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, ts.settings.blendOn)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, ts.settings.blendOn)
			assert.Equal(t, tt.expected, *ts.settings.blendOn)
		})
	}
}

func TestSettingsSetGoogleCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	keyFile := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(keyFile, []byte("{}"), 0o600))

	_, err := runCommand(nil, "settings", "set", "google", "--credentials", keyFile, "--subject", "admin@example.com")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, keyFile, ts.settings.saved.Google.CredentialsFile)
	assert.Equal(t, "admin@example.com", ts.settings.saved.Google.Subject)
}

func TestSettingsSetGoogleCmd_MissingFile(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "settings", "set", "google", "--credentials", filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials file")
	assert.Nil(t, ts.settings.saved)
}

func TestSettingsSMTPCmd_ConfiguresRelay(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	input := strings.Join([]string{
		"1",
		"smtp.example.com",
		"2525",
		"bob@example.com",
		"secret",
		"",
		"Bob",
	}, "\n") + "\n"

	out, err := runCommand(strings.NewReader(input), "settings", "smtp")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.mail)
	mail := *ts.settings.mail
	assert.Equal(t, domain.MailTransportSMTP, mail.Transport)
	assert.Equal(t, "smtp.example.com", mail.Host)
	assert.Equal(t, 2525, mail.Port)
	assert.Equal(t, "bob@example.com", mail.Username)
	assert.Equal(t, "secret", mail.Password)
	assert.Equal(t, "bob@example.com", mail.From, "from defaults to the username")
	assert.Equal(t, "Bob", mail.FromName)
	assert.Contains(t, out, "Notification delivery configured: SMTP relay (STARTTLS)")
}

func TestSettingsSMTPCmd_Disable(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(strings.NewReader("3\n"), "settings", "mail")

	require.NoError(t, err)
	require.NotNil(t, ts.settings.mail)
	assert.Equal(t, domain.MailTransportNone, ts.settings.mail.Transport)
	assert.Contains(t, out, "Disabled (dry run)")
}

func TestSettingsSMTPCmd_InvalidPort(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(strings.NewReader("1\n\nabc\n"), "settings", "smtp")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid port "abc"`)
	assert.Nil(t, ts.settings.mail)
}

func TestSettingsCmds_NoService(t *testing.T) {
	commands := [][]string{
		{"settings"},
		{"settings", "set", "source", "jobs", "file", "x"},
		{"settings", "set", "blend", "on"},
		{"settings", "smtp"},
	}

	for _, args := range commands {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, cleanup := setupTestServices()
			defer cleanup()
			settingsService = nil

			_, err := runCommand(strings.NewReader(""), args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "settings service not configured")
		})
	}
}

func TestOnOffAndOrNotSet(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
	assert.Equal(t, "(not set)", orNotSet(""))
	assert.Equal(t, "x", orNotSet("x"))
}

// fakeGoogle serves the token endpoint and writes a desktop client JSON
// pointing at it.
func fakeGoogle(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`)
	}))
	t.Cleanup(server.Close)

	client := map[string]any{
		"installed": map[string]any{
			"client_id":     "id.apps.googleusercontent.com",
			"client_secret": "secret",
			"auth_uri":      "https://accounts.example.com/auth",
			"token_uri":     server.URL,
			"redirect_uris": []string{"http://localhost"},
		},
	}
	data, err := json.Marshal(client)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// approvingBrowser follows the authorization URL straight back to the
// loopback callback.
func approvingBrowser(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	q := u.Query()
	go func() {
		//nolint:noctx // test helper
		resp, err := http.Get(q.Get("redirect_uri") + "?" + url.Values{
			"code":  {"code"},
			"state": {q.Get("state")},
		}.Encode())
		if err == nil {
			resp.Body.Close()
		}
	}()
	return nil
}

func TestSettingsLoginCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	prevOpen := openBrowser
	openBrowser = approvingBrowser
	defer func() { openBrowser = prevOpen }()

	clientFile := fakeGoogle(t)
	tokenFile := filepath.Join(t.TempDir(), "token.json")

	out, err := runCommand(nil, "settings", "login", "--client", clientFile, "--token", tokenFile)

	require.NoError(t, err)
	assert.Contains(t, out, "Open this URL to authorise TriStep")
	assert.Contains(t, out, "Signed in. Token saved to "+tokenFile)
	assert.Contains(t, out, "choose the Gmail API")

	require.NotNil(t, ts.settings.saved)
	assert.Equal(t, clientFile, ts.settings.saved.Google.ClientFile)
	assert.Equal(t, tokenFile, ts.settings.saved.Google.TokenFile)

	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"refresh_token": "rt"`)
}

func TestSettingsLoginCmd_NeedsClient(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "settings", "login", "--no-browser")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --client")
	assert.Nil(t, ts.settings.saved)
}

func TestSettingsLoginCmd_BadClientFile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	path := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := runCommand(nil, "settings", "login", "--client", path, "--no-browser")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse oauth client")
}

func TestSettingsShowCmd_SignedIn(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.settings.settings.Google.ClientFile = "/keys/client.json"
	ts.settings.settings.Google.TokenFile = "/keys/token.json"

	out, err := runCommand(nil, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Signed in: yes (/keys/token.json)")
}
