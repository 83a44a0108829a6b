// Command tristep recommends jobs and courses from a free-text profile and
// works the review queue of user submissions.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/tristep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tristep/internal/adapters/driven/mail/smtp"
	"github.com/custodia-labs/tristep/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tristep/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tristep/internal/adapters/driving/cli"
	"github.com/custodia-labs/tristep/internal/connectors"
	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/connectors/google/gmail"
	"github.com/custodia-labs/tristep/internal/connectors/google/sheets"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driven"
	"github.com/custodia-labs/tristep/internal/core/services"
	"github.com/custodia-labs/tristep/internal/logger"
	"github.com/custodia-labs/tristep/internal/normalisers"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// httpTimeout bounds corpus downloads from URL sources.
const httpTimeout = 60 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("TRISTEP_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	store, err := sqlite.NewStore(os.Getenv("TRISTEP_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	googleSettings := func() (domain.GoogleSettings, error) {
		s, err := settingsService.Get()
		if err != nil {
			return domain.GoogleSettings{}, err
		}
		return s.Google, nil
	}

	factory := connectors.NewDefaultFactory(&http.Client{Timeout: httpTimeout}, googleSettings)
	corpusService := services.NewCorpusService(
		settingsService,
		factory,
		normalisers.NewDefaultRegistry(),
		store.SnapshotStore(),
	)
	recommendService := services.NewRecommendService(corpusService)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	reviewService := services.NewReviewService(
		settingsService,
		newSpreadsheet(ctx, settings.Google),
		newMailer(ctx, settings),
		store.ReviewLog(),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Recommend: recommendService,
		Corpus:    corpusService,
		Review:    reviewService,
		Settings:  settingsService,
	})

	return cli.ExecuteContext(ctx)
}

// newSpreadsheet returns the Sheets adapter, or nil when Google credentials
// are missing. The review commands report the missing configuration.
func newSpreadsheet(ctx context.Context, g domain.GoogleSettings) driven.Spreadsheet {
	if !g.IsConfigured() {
		return nil
	}
	ts, err := google.LoadCredentials(ctx, g, google.SheetsScope)
	if err != nil {
		logger.Error("sheets: %v", err)
		return nil
	}
	svc, err := google.NewSheetsService(ctx, ts)
	if err != nil {
		logger.Error("sheets: %v", err)
		return nil
	}
	return sheets.New(svc)
}

// newMailer returns the configured notification transport, or nil when it
// cannot be built. Decisions still apply without a mailer; the email is
// reported as skipped.
func newMailer(ctx context.Context, settings *domain.AppSettings) driven.Mailer {
	mail := settings.Mail
	switch mail.Transport {
	case domain.MailTransportNone:
		return memory.NewOutbox()

	case domain.MailTransportGmail:
		load := google.LoadCredentials
		if settings.Google.HasUserToken() {
			load = google.LoadUserToken
		}
		ts, err := load(ctx, settings.Google, google.GmailSendScope)
		if err != nil {
			logger.Error("gmail: %v", err)
			return nil
		}
		svc, err := google.NewGmailService(ctx, ts)
		if err != nil {
			logger.Error("gmail: %v", err)
			return nil
		}
		m, err := gmail.New(svc, mail.From, mail.FromName)
		if err != nil {
			logger.Error("gmail: %v", err)
			return nil
		}
		return m

	default:
		if !mail.IsConfigured() {
			return nil
		}
		m, err := smtp.New(mail)
		if err != nil {
			logger.Error("smtp: %v", err)
			return nil
		}
		return m
	}
}
