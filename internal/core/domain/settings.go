package domain

// Default corpus export links.
const (
	DefaultJobsCSVURL = "https://docs.google.com/spreadsheets/d/" +
		"1huKbxP4W5c5sBWAQ5LzerhdId6TR9glCRFKn7DNOKEE/export?format=csv&gid=1980208131"
	DefaultCoursesCSVURL = "https://docs.google.com/spreadsheets/d/" +
		"1PM_ifqhHQbvVau26xH2rU7xEw8ib1t2D6s_eDRPzJVI/export?format=csv&gid=2031125993"
)

// Default destination spreadsheets for accepted submissions.
const (
	DefaultJobsDestinationID    = "1huKbxP4W5c5sBWAQ5LzerhdId6TR9glCRFKn7DNOKEE"
	DefaultCoursesDestinationID = "1PM_ifqhHQbvVau26xH2rU7xEw8ib1t2D6s_eDRPzJVI"
)

// DefaultSubmissionSheet is the tab Google Forms writes responses into.
const DefaultSubmissionSheet = "Form Responses 1"

// MailTransport selects how notifications are delivered.
type MailTransport string

// Available mail transports.
const (
	// MailTransportSMTP relays through an SMTP server with STARTTLS.
	MailTransportSMTP MailTransport = "smtp"

	// MailTransportGmail sends through the Gmail API.
	MailTransportGmail MailTransport = "gmail"

	// MailTransportNone records notifications without sending them.
	MailTransportNone MailTransport = "none"
)

// IsValid returns true if the transport is recognised.
func (t MailTransport) IsValid() bool {
	switch t {
	case MailTransportSMTP, MailTransportGmail, MailTransportNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t MailTransport) String() string {
	return string(t)
}

// Description returns a human-readable description of the transport.
func (t MailTransport) Description() string {
	switch t {
	case MailTransportSMTP:
		return "SMTP relay (STARTTLS)"
	case MailTransportGmail:
		return "Gmail API"
	case MailTransportNone:
		return "Disabled (dry run)"
	default:
		return UnknownValue
	}
}

// AllMailTransports returns all available mail transports.
func AllMailTransports() []MailTransport {
	return []MailTransport{MailTransportSMTP, MailTransportGmail, MailTransportNone}
}

// CorpusSettings locates the two datasets.
type CorpusSettings struct {
	Jobs    SourceRef
	Courses SourceRef
}

// Source returns the reference for a corpus kind.
func (c CorpusSettings) Source(kind CorpusKind) SourceRef {
	if kind == CorpusCourses {
		return c.Courses
	}
	return c.Jobs
}

// SheetSettings locates a submission sheet and its publication target.
type SheetSettings struct {
	// SpreadsheetID is the form responses spreadsheet.
	SpreadsheetID string

	// SheetName is the tab holding responses.
	SheetName string

	// DestinationID is the public spreadsheet accepted rows are appended to.
	DestinationID string
}

// IsConfigured returns true if both spreadsheets are set.
func (s SheetSettings) IsConfigured() bool {
	return s.SpreadsheetID != "" && s.SheetName != "" && s.DestinationID != ""
}

// ReviewSettings holds the submission sheets for both entity types.
type ReviewSettings struct {
	Jobs    SheetSettings
	Courses SheetSettings
}

// Sheet returns the settings for a corpus kind.
func (r ReviewSettings) Sheet(kind CorpusKind) SheetSettings {
	if kind == CorpusCourses {
		return r.Courses
	}
	return r.Jobs
}

// GoogleSettings holds service account configuration for Google APIs.
type GoogleSettings struct {
	// CredentialsFile is the path to a service account JSON key.
	CredentialsFile string

	// Subject is the user impersonated for Gmail sends (domain-wide delegation).
	Subject string

	// ClientFile is an OAuth desktop client JSON used by "settings login".
	ClientFile string

	// TokenFile holds the user token obtained by the login flow. When set,
	// Gmail sends as that user instead of through the service account.
	TokenFile string
}

// IsConfigured returns true if a credentials file is set.
func (g GoogleSettings) IsConfigured() bool {
	return g.CredentialsFile != ""
}

// HasUserToken returns true if a signed-in user token can be used for Gmail.
func (g GoogleSettings) HasUserToken() bool {
	return g.ClientFile != "" && g.TokenFile != ""
}

// CanSendGmail returns true if either credential kind is available.
func (g GoogleSettings) CanSendGmail() bool {
	return g.HasUserToken() || g.IsConfigured()
}

// MailSettings holds notification delivery configuration.
type MailSettings struct {
	Transport MailTransport
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	FromName  string
}

// IsConfigured returns true if the selected transport has what it needs.
func (m MailSettings) IsConfigured() bool {
	switch m.Transport {
	case MailTransportSMTP:
		return m.Host != "" && m.Port > 0 && m.From != ""
	case MailTransportGmail:
		return m.From != ""
	case MailTransportNone:
		return true
	default:
		return false
	}
}

// RankingSettings holds recommendation behaviour.
type RankingSettings struct {
	// CourseBlend selects the Score Blender pipeline by default.
	CourseBlend bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	Corpus  CorpusSettings
	Review  ReviewSettings
	Google  GoogleSettings
	Mail    MailSettings
	Ranking RankingSettings
}

// DefaultAppSettings returns default settings.
// The corpora point at the public exports; review sheets need their
// response spreadsheet IDs configured before use.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			Jobs:    SourceRef{Type: SourceURL, Location: DefaultJobsCSVURL},
			Courses: SourceRef{Type: SourceURL, Location: DefaultCoursesCSVURL},
		},
		Review: ReviewSettings{
			Jobs: SheetSettings{
				SheetName:     DefaultSubmissionSheet,
				DestinationID: DefaultJobsDestinationID,
			},
			Courses: SheetSettings{
				SheetName:     DefaultSubmissionSheet,
				DestinationID: DefaultCoursesDestinationID,
			},
		},
		Mail: MailSettings{
			Transport: MailTransportSMTP,
			Host:      "smtp.gmail.com",
			Port:      587,
			FromName:  "TRISTEP Admin",
		},
	}
}
