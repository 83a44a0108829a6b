package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tristep/internal/adapters/driving/oauth"
	"github.com/custodia-labs/tristep/internal/connectors/google"
	"github.com/custodia-labs/tristep/internal/core/domain"
)

var (
	sheetSpreadsheetID string
	sheetName          string
	sheetDestinationID string

	googleCredentials string
	googleSubject     string

	loginClientFile string
	loginTokenFile  string
	loginNoBrowser  bool
)

// openBrowser is replaced in tests.
var openBrowser = oauth.OpenBrowser

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure corpus sources, review sheets, Google credentials
and notification delivery.

Settings live in ~/.tristep/config.toml. Any key can be overridden with a
TRISTEP_ environment variable, e.g. TRISTEP_MAIL_PASSWORD.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a setting",
}

var settingsSourceCmd = &cobra.Command{
	Use:   "source <jobs|courses> <url|drive|file> <location>",
	Short: "Set where a corpus is loaded from",
	Example: `  tristep settings set source jobs file ~/data/jobs.csv
  tristep settings set source courses drive 1PM_ifqhHQbvVau26xH2rU7xEw8ib1t2D6s_eDRPzJVI`,
	Args: cobra.ExactArgs(3),
	RunE: runSettingsSource,
}

var settingsSheetCmd = &cobra.Command{
	Use:   "sheet <jobs|courses>",
	Short: "Set the submission and destination spreadsheets",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsSheet,
}

var settingsBlendCmd = &cobra.Command{
	Use:   "blend <on|off>",
	Short: "Set the default course ordering",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsBlend,
}

var settingsGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Set the Google service account credentials",
	Args:  cobra.NoArgs,
	RunE:  runSettingsGoogle,
}

var settingsSMTPCmd = &cobra.Command{
	Use:     "smtp",
	Aliases: []string{"mail"},
	Short:   "Configure notification delivery",
	Long: `Run an interactive wizard to choose how review notifications are sent:
through an SMTP relay with STARTTLS, the Gmail API, or not at all.`,
	RunE: runSettingsSMTP,
}

var settingsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorise Gmail sends as your Google account",
	Long: `Signs in through the browser with an OAuth desktop client and stores a
refresh token. With a token in place the gmail transport sends as the
signed-in user, so no service account delegation is needed.

Download the client JSON from the Google Cloud console
(APIs & Services > Credentials > OAuth client ID > Desktop app).`,
	Example: `  tristep settings login --client ~/Downloads/client_secret.json`,
	Args:    cobra.NoArgs,
	RunE:    runSettingsLogin,
}

func init() {
	settingsLoginCmd.Flags().StringVar(&loginClientFile, "client", "", "OAuth desktop client JSON (default: last used)")
	settingsLoginCmd.Flags().StringVar(&loginTokenFile, "token", "", "where to store the token (default ~/.tristep/gmail_token.json)")
	settingsLoginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "print the URL without opening a browser")
	settingsCmd.AddCommand(settingsLoginCmd)

	settingsSheetCmd.Flags().StringVar(&sheetSpreadsheetID, "spreadsheet", "", "submission spreadsheet ID")
	settingsSheetCmd.Flags().StringVar(&sheetName, "sheet", "", "submission sheet (tab) name")
	settingsSheetCmd.Flags().StringVar(&sheetDestinationID, "destination", "", "destination spreadsheet ID")
	settingsGoogleCmd.Flags().StringVar(&googleCredentials, "credentials", "", "service account JSON key file")
	settingsGoogleCmd.Flags().StringVar(&googleSubject, "subject", "", "user to impersonate for Gmail sends")

	settingsSetCmd.AddCommand(settingsSourceCmd)
	settingsSetCmd.AddCommand(settingsSheetCmd)
	settingsSetCmd.AddCommand(settingsBlendCmd)
	settingsSetCmd.AddCommand(settingsGoogleCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSMTPCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	for _, kind := range domain.AllCorpusKinds() {
		ref := settings.Corpus.Source(kind)
		cmd.Printf("  %s: %s %s\n", kind, ref.Type, ref.Location)
	}
	cmd.Println()

	cmd.Println("[Ranking]")
	cmd.Printf("  Course blend: %s\n", onOff(settings.Ranking.CourseBlend))
	cmd.Println()

	cmd.Println("[Review]")
	for _, kind := range domain.AllCorpusKinds() {
		sheet := settings.Review.Sheet(kind)
		cmd.Printf("  %s:\n", kind)
		cmd.Printf("    Spreadsheet: %s\n", orNotSet(sheet.SpreadsheetID))
		cmd.Printf("    Sheet: %s\n", orNotSet(sheet.SheetName))
		cmd.Printf("    Destination: %s\n", orNotSet(sheet.DestinationID))
	}
	cmd.Println()

	cmd.Println("[Google]")
	cmd.Printf("  Credentials: %s\n", orNotSet(settings.Google.CredentialsFile))
	if settings.Google.Subject != "" {
		cmd.Printf("  Subject: %s\n", settings.Google.Subject)
	}
	if settings.Google.HasUserToken() {
		cmd.Printf("  Signed in: yes (%s)\n", settings.Google.TokenFile)
	}
	cmd.Println()

	mail := settings.Mail
	cmd.Println("[Mail]")
	cmd.Printf("  Transport: %s\n", mail.Transport.Description())
	if mail.Transport == domain.MailTransportSMTP {
		cmd.Printf("  Server: %s:%d\n", mail.Host, mail.Port)
		cmd.Printf("  Username: %s\n", orNotSet(mail.Username))
		if mail.Password != "" {
			cmd.Printf("  Password: %s\n", maskAPIKey(mail.Password))
		} else {
			cmd.Printf("  Password: (not set)\n")
		}
	}
	if mail.Transport != domain.MailTransportNone {
		cmd.Printf("  From: %s <%s>\n", mail.FromName, orNotSet(mail.From))
	}
	status := "configured"
	if !mail.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}

	return nil
}

func runSettingsSource(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	ref := domain.SourceRef{Type: domain.SourceType(strings.ToLower(args[1])), Location: args[2]}

	if err := settingsService.SetCorpusSource(kind, ref); err != nil {
		return fmt.Errorf("failed to set %s source: %w", kind, err)
	}
	cmd.Printf("%s corpus source set to %s\n", kind, ref.Identity())
	return nil
}

func runSettingsSheet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	if sheetSpreadsheetID == "" && sheetName == "" && sheetDestinationID == "" {
		return errors.New("nothing to change: pass --spreadsheet, --sheet or --destination")
	}

	sheet := domain.SheetSettings{
		SpreadsheetID: sheetSpreadsheetID,
		SheetName:     sheetName,
		DestinationID: sheetDestinationID,
	}
	if err := settingsService.SetReviewSheet(kind, sheet); err != nil {
		return fmt.Errorf("failed to set %s review sheet: %w", kind, err)
	}
	cmd.Printf("%s review sheet updated\n", kind)
	return nil
}

func runSettingsBlend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var enabled bool
	switch strings.ToLower(args[0]) {
	case "on", "true", "yes", "1":
		enabled = true
	case "off", "false", "no", "0":
		enabled = false
	default:
		return fmt.Errorf("invalid value %q: expected on or off", args[0])
	}

	if err := settingsService.SetCourseBlend(enabled); err != nil {
		return fmt.Errorf("failed to set course blend: %w", err)
	}
	cmd.Printf("Course blend %s\n", onOff(enabled))
	return nil
}

func runSettingsGoogle(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if googleCredentials == "" && googleSubject == "" {
		return errors.New("nothing to change: pass --credentials or --subject")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if googleCredentials != "" {
		if _, err := os.Stat(googleCredentials); err != nil {
			return fmt.Errorf("credentials file: %w", err)
		}
		settings.Google.CredentialsFile = googleCredentials
	}
	if googleSubject != "" {
		settings.Google.Subject = googleSubject
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Google credentials updated")
	return nil
}

func runSettingsSMTP(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	current := settings.Mail
	reader := bufio.NewReader(cmd.InOrStdin())

	transports := domain.AllMailTransports()
	cmd.Println("Notification delivery:")
	defaultIdx := 1
	for i, t := range transports {
		marker := " "
		if t == current.Transport {
			marker = "*"
			defaultIdx = i + 1
		}
		cmd.Printf("  %s %d. %s\n", marker, i+1, t.Description())
	}
	cmd.Printf("Select [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(transports), defaultIdx)

	mail := current
	mail.Transport = transports[idx-1]

	if mail.Transport == domain.MailTransportSMTP {
		mail.Host = prompt(cmd, reader, "SMTP host", current.Host)
		port := prompt(cmd, reader, "SMTP port", strconv.Itoa(current.Port))
		if mail.Port, err = strconv.Atoi(port); err != nil || mail.Port <= 0 {
			return fmt.Errorf("invalid port %q", port)
		}
		mail.Username = prompt(cmd, reader, "Username", current.Username)
		cmd.Print("Password (leave empty to keep): ")
		mail.Password = readPassword(cmd.InOrStdin(), reader)
		cmd.Println()
	}
	if mail.Transport != domain.MailTransportNone {
		defaultFrom := current.From
		if defaultFrom == "" {
			defaultFrom = mail.Username
		}
		mail.From = prompt(cmd, reader, "From address", defaultFrom)
		mail.FromName = prompt(cmd, reader, "From name", current.FromName)
	}

	if err := settingsService.SetMail(mail); err != nil {
		return fmt.Errorf("failed to save mail settings: %w", err)
	}
	cmd.Printf("\nNotification delivery configured: %s\n", mail.Transport.Description())
	return nil
}

func runSettingsLogin(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	clientFile := loginClientFile
	if clientFile == "" {
		clientFile = settings.Google.ClientFile
	}
	if clientFile == "" {
		return errors.New("no OAuth client: pass --client <client_secret.json>")
	}
	tokenFile := loginTokenFile
	if tokenFile == "" {
		tokenFile = settings.Google.TokenFile
	}
	if tokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		tokenFile = filepath.Join(home, ".tristep", "gmail_token.json")
	}

	cfg, err := google.LoadClientConfig(clientFile, google.GmailSendScope)
	if err != nil {
		return err
	}

	flow := &oauth.Flow{Config: cfg, Out: cmd.OutOrStdout()}
	if !loginNoBrowser {
		flow.Open = openBrowser
	}
	tok, err := flow.Authorize(cmd.Context())
	if err != nil {
		return fmt.Errorf("google login: %w", err)
	}
	if err := google.SaveToken(tokenFile, tok); err != nil {
		return err
	}

	settings.Google.ClientFile = clientFile
	settings.Google.TokenFile = tokenFile
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Signed in. Token saved to %s\n", tokenFile)
	if settings.Mail.Transport != domain.MailTransportGmail {
		cmd.Println("Run 'tristep settings smtp' and choose the Gmail API to send with it.")
	}
	return nil
}

// Helper functions.

func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	if v := readLine(reader); v != "" {
		return v
	}
	return current
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal, otherwise it
// falls back to a plain line from reader.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
