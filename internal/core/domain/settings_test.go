package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailTransport_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		transport MailTransport
		expected  bool
	}{
		{"smtp is valid", MailTransportSMTP, true},
		{"gmail is valid", MailTransportGmail, true},
		{"none is valid", MailTransportNone, true},
		{"empty is invalid", MailTransport(""), false},
		{"unknown is invalid", MailTransport("sendgrid"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.transport.IsValid())
		})
	}
}

func TestMailTransport_Description(t *testing.T) {
	for _, tr := range AllMailTransports() {
		assert.NotEqual(t, UnknownValue, tr.Description(), tr.String())
	}
	assert.Equal(t, UnknownValue, MailTransport("x").Description())
}

func TestMailSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings MailSettings
		expected bool
	}{
		{
			name:     "smtp complete",
			settings: MailSettings{Transport: MailTransportSMTP, Host: "smtp.gmail.com", Port: 587, From: "a@b.co"},
			expected: true,
		},
		{
			name:     "smtp missing sender",
			settings: MailSettings{Transport: MailTransportSMTP, Host: "smtp.gmail.com", Port: 587},
			expected: false,
		},
		{
			name:     "gmail needs sender",
			settings: MailSettings{Transport: MailTransportGmail},
			expected: false,
		},
		{
			name:     "none always configured",
			settings: MailSettings{Transport: MailTransportNone},
			expected: true,
		},
		{
			name:     "unknown transport",
			settings: MailSettings{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, SourceURL, s.Corpus.Jobs.Type)
	assert.Equal(t, DefaultJobsCSVURL, s.Corpus.Jobs.Location)
	assert.Equal(t, DefaultCoursesCSVURL, s.Corpus.Source(CorpusCourses).Location)
	assert.Equal(t, DefaultSubmissionSheet, s.Review.Sheet(CorpusJobs).SheetName)
	assert.Equal(t, DefaultCoursesDestinationID, s.Review.Sheet(CorpusCourses).DestinationID)
	assert.False(t, s.Review.Jobs.IsConfigured(), "response spreadsheet must be set by the user")
	assert.Equal(t, MailTransportSMTP, s.Mail.Transport)
	assert.Equal(t, "smtp.gmail.com", s.Mail.Host)
	assert.Equal(t, 587, s.Mail.Port)
	assert.False(t, s.Ranking.CourseBlend)
}

func TestGoogleSettings(t *testing.T) {
	tests := []struct {
		name       string
		settings   GoogleSettings
		configured bool
		userToken  bool
		gmail      bool
	}{
		{"empty", GoogleSettings{}, false, false, false},
		{"service account", GoogleSettings{CredentialsFile: "sa.json"}, true, false, true},
		{"user login", GoogleSettings{ClientFile: "c.json", TokenFile: "t.json"}, false, true, true},
		{"client without token", GoogleSettings{ClientFile: "c.json"}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.configured, tt.settings.IsConfigured())
			assert.Equal(t, tt.userToken, tt.settings.HasUserToken())
			assert.Equal(t, tt.gmail, tt.settings.CanSendGmail())
		})
	}
}
