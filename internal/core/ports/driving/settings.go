package driving

import "github.com/custodia-labs/tristep/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetCorpusSource updates where a corpus is loaded from.
	SetCorpusSource(kind domain.CorpusKind, ref domain.SourceRef) error

	// SetReviewSheet updates the submission sheet of a corpus kind.
	SetReviewSheet(kind domain.CorpusKind, sheet domain.SheetSettings) error

	// SetMail configures notification delivery.
	SetMail(mail domain.MailSettings) error

	// SetCourseBlend toggles the popularity-blended course ordering.
	SetCourseBlend(enabled bool) error

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
