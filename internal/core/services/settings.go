package services

import (
	"fmt"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage. Per-kind keys are built with kindKey.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySourceType     = "type"
	keySourceLocation = "location"
	keySpreadsheetID  = "spreadsheet_id"
	keySheetName      = "sheet_name"
	keyDestinationID  = "destination_id"

	keyGoogleCredentials = "google.credentials_file"
	keyGoogleSubject     = "google.subject"
	keyGoogleClient      = "google.client_file"
	keyGoogleToken       = "google.token_file"

	keyMailTransport = "mail.transport"
	keyMailHost      = "mail.host"
	keyMailPort      = "mail.port"
	keyMailUsername  = "mail.username"
	keyMailPassword  = "mail.password"
	keyMailFrom      = "mail.from"
	keyMailFromName  = "mail.from_name"

	keyCourseBlend = "ranking.course_blend"
)

// kindKey builds "<section>.<kind>.<field>", e.g. "corpus.jobs.location".
func kindKey(section string, kind domain.CorpusKind, field string) string {
	return section + "." + kind.String() + "." + field
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Unset or invalid values fall
// back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Jobs:    s.getSource(domain.CorpusJobs, defaults.Corpus.Jobs),
			Courses: s.getSource(domain.CorpusCourses, defaults.Corpus.Courses),
		},
		Review: domain.ReviewSettings{
			Jobs:    s.getSheet(domain.CorpusJobs, defaults.Review.Jobs),
			Courses: s.getSheet(domain.CorpusCourses, defaults.Review.Courses),
		},
		Google: domain.GoogleSettings{
			CredentialsFile: s.configStore.GetString(keyGoogleCredentials),
			Subject:         s.configStore.GetString(keyGoogleSubject),
			ClientFile:      s.configStore.GetString(keyGoogleClient),
			TokenFile:       s.configStore.GetString(keyGoogleToken),
		},
		Mail: domain.MailSettings{
			Transport: s.getTransport(defaults.Mail.Transport),
			Host:      s.getString(keyMailHost, defaults.Mail.Host),
			Port:      s.getInt(keyMailPort, defaults.Mail.Port),
			Username:  s.configStore.GetString(keyMailUsername),
			Password:  s.configStore.GetString(keyMailPassword),
			From:      s.configStore.GetString(keyMailFrom),
			FromName:  s.getString(keyMailFromName, defaults.Mail.FromName),
		},
		Ranking: domain.RankingSettings{
			CourseBlend: s.getBool(keyCourseBlend, defaults.Ranking.CourseBlend),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	for _, kind := range domain.AllCorpusKinds() {
		if err := s.saveSource(kind, settings.Corpus.Source(kind)); err != nil {
			return err
		}
		if err := s.saveSheet(kind, settings.Review.Sheet(kind)); err != nil {
			return err
		}
	}

	values := []struct {
		key   string
		value any
	}{
		{keyGoogleCredentials, settings.Google.CredentialsFile},
		{keyGoogleSubject, settings.Google.Subject},
		{keyGoogleClient, settings.Google.ClientFile},
		{keyGoogleToken, settings.Google.TokenFile},
		{keyMailTransport, settings.Mail.Transport.String()},
		{keyMailHost, settings.Mail.Host},
		{keyMailPort, settings.Mail.Port},
		{keyMailUsername, settings.Mail.Username},
		{keyMailFrom, settings.Mail.From},
		{keyMailFromName, settings.Mail.FromName},
		{keyCourseBlend, settings.Ranking.CourseBlend},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Empty password keeps the stored one.
	if settings.Mail.Password != "" {
		if err := s.configStore.Set(keyMailPassword, settings.Mail.Password); err != nil {
			return fmt.Errorf("save mail password: %w", err)
		}
	}

	return nil
}

// SetCorpusSource updates where a corpus is loaded from.
func (s *SettingsService) SetCorpusSource(kind domain.CorpusKind, ref domain.SourceRef) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: corpus kind %q", domain.ErrInvalidInput, kind)
	}
	if !ref.IsConfigured() {
		return fmt.Errorf("%w: source needs a valid type (url, drive, file) and a location", domain.ErrInvalidInput)
	}
	return s.saveSource(kind, ref)
}

// SetReviewSheet updates the submission sheet of a corpus kind.
// Empty fields keep their current value.
func (s *SettingsService) SetReviewSheet(kind domain.CorpusKind, sheet domain.SheetSettings) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: corpus kind %q", domain.ErrInvalidInput, kind)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	current := settings.Review.Sheet(kind)
	if sheet.SpreadsheetID == "" {
		sheet.SpreadsheetID = current.SpreadsheetID
	}
	if sheet.SheetName == "" {
		sheet.SheetName = current.SheetName
	}
	if sheet.DestinationID == "" {
		sheet.DestinationID = current.DestinationID
	}

	return s.saveSheet(kind, sheet)
}

// SetMail configures notification delivery.
func (s *SettingsService) SetMail(mail domain.MailSettings) error {
	if !mail.Transport.IsValid() {
		return fmt.Errorf("%w: mail transport %q", domain.ErrInvalidInput, mail.Transport)
	}
	if !mail.IsConfigured() {
		return fmt.Errorf("%w: %s transport needs a sender address", domain.ErrInvalidInput, mail.Transport)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Mail = mail
	return s.Save(settings)
}

// SetCourseBlend toggles the popularity-blended course ordering.
func (s *SettingsService) SetCourseBlend(enabled bool) error {
	return s.configStore.Set(keyCourseBlend, enabled)
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	for _, kind := range domain.AllCorpusKinds() {
		ref := settings.Corpus.Source(kind)
		if !ref.IsConfigured() {
			return fmt.Errorf("%s corpus: %w", kind, domain.ErrSourceNotConfigured)
		}
		if ref.Type == domain.SourceDrive && !settings.Google.IsConfigured() {
			return fmt.Errorf("%s corpus: drive source requires google.credentials_file", kind)
		}
	}

	if !settings.Mail.IsConfigured() {
		return fmt.Errorf("mail transport %q is not fully configured", settings.Mail.Transport)
	}
	if settings.Mail.Transport == domain.MailTransportGmail && !settings.Google.CanSendGmail() {
		return fmt.Errorf("gmail transport requires google.credentials_file or a google login")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) saveSource(kind domain.CorpusKind, ref domain.SourceRef) error {
	if err := s.configStore.Set(kindKey("corpus", kind, keySourceType), ref.Type.String()); err != nil {
		return fmt.Errorf("save %s source type: %w", kind, err)
	}
	if err := s.configStore.Set(kindKey("corpus", kind, keySourceLocation), ref.Location); err != nil {
		return fmt.Errorf("save %s source location: %w", kind, err)
	}
	return nil
}

func (s *SettingsService) saveSheet(kind domain.CorpusKind, sheet domain.SheetSettings) error {
	fields := map[string]string{
		keySpreadsheetID: sheet.SpreadsheetID,
		keySheetName:     sheet.SheetName,
		keyDestinationID: sheet.DestinationID,
	}
	for field, value := range fields {
		if err := s.configStore.Set(kindKey("review", kind, field), value); err != nil {
			return fmt.Errorf("save %s review %s: %w", kind, field, err)
		}
	}
	return nil
}

func (s *SettingsService) getSource(kind domain.CorpusKind, defaultVal domain.SourceRef) domain.SourceRef {
	ref := domain.SourceRef{
		Type:     domain.SourceType(s.configStore.GetString(kindKey("corpus", kind, keySourceType))),
		Location: s.configStore.GetString(kindKey("corpus", kind, keySourceLocation)),
	}
	if !ref.IsConfigured() {
		return defaultVal
	}
	return ref
}

func (s *SettingsService) getSheet(kind domain.CorpusKind, defaultVal domain.SheetSettings) domain.SheetSettings {
	return domain.SheetSettings{
		SpreadsheetID: s.getString(kindKey("review", kind, keySpreadsheetID), defaultVal.SpreadsheetID),
		SheetName:     s.getString(kindKey("review", kind, keySheetName), defaultVal.SheetName),
		DestinationID: s.getString(kindKey("review", kind, keyDestinationID), defaultVal.DestinationID),
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTransport(defaultVal domain.MailTransport) domain.MailTransport {
	val := s.configStore.GetString(keyMailTransport)
	if val == "" {
		return defaultVal
	}
	transport := domain.MailTransport(val)
	if !transport.IsValid() {
		return defaultVal
	}
	return transport
}
