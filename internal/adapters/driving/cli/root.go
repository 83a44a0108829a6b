// Package cli provides the cobra command tree for tristep.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/core/ports/driving"
	"github.com/custodia-labs/tristep/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services injected by main. Commands return an error when theirs is nil.
var (
	recommendService driving.RecommendService
	corpusService    driving.CorpusService
	reviewService    driving.ReviewService
	settingsService  driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "tristep",
	Short: "Job and course recommendations from a free-text profile",
	Long: `TriStep ranks job postings and online courses against a free-text
profile using TF-IDF cosine similarity, and drives the review queue for
user-submitted jobs and courses kept in Google Sheets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
}

// Services groups the driving ports used by the commands.
type Services struct {
	Recommend driving.RecommendService
	Corpus    driving.CorpusService
	Review    driving.ReviewService
	Settings  driving.SettingsService
}

// SetServices injects the core services.
func SetServices(s Services) {
	recommendService = s.Recommend
	corpusService = s.Corpus
	reviewService = s.Review
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
