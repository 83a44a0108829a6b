package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and reload the job and course datasets",
}

var corpusRefreshCmd = &cobra.Command{
	Use:   "refresh [jobs|courses]",
	Short: "Reload a corpus from its source",
	Long: `Drops the cached index and reloads the dataset from its configured
source. Without an argument both corpora are reloaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCorpusRefresh,
}

var corpusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache state and the last successful load of each corpus",
	Args:  cobra.NoArgs,
	RunE:  runCorpusStatus,
}

func init() {
	corpusCmd.AddCommand(corpusRefreshCmd)
	corpusCmd.AddCommand(corpusStatusCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusRefresh(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	kinds := domain.AllCorpusKinds()
	if len(args) == 1 {
		kind, err := domain.ParseCorpusKind(args[0])
		if err != nil {
			return fmt.Errorf("unknown corpus %q: expected jobs or courses", args[0])
		}
		kinds = []domain.CorpusKind{kind}
	}

	for _, kind := range kinds {
		corpus, err := corpusService.Refresh(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("refresh %s: %w", kind, err)
		}
		cmd.Printf("Reloaded %s: %d rows (%d skipped, %d duplicates)\n",
			kind, corpus.Len(), corpus.Skipped, corpus.Duplicates)
	}
	return nil
}

func runCorpusStatus(cmd *cobra.Command, _ []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	statuses, err := corpusService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("corpus status: %w", err)
	}

	for _, st := range statuses {
		cmd.Printf("[%s]\n", st.Kind.Description())
		if st.Source.IsConfigured() {
			cmd.Printf("  Source: %s\n", st.Source.Identity())
		} else {
			cmd.Println("  Source: (not configured)")
		}
		cmd.Printf("  Cached: %t\n", st.Cached)
		cmd.Printf("  Watched: %t\n", st.Watched)
		if snap := st.Snapshot; snap != nil {
			cmd.Printf("  Rows: %d (%d skipped, %d duplicates)\n", snap.Rows, snap.Skipped, snap.Duplicates)
			cmd.Printf("  Vocabulary: %d terms\n", snap.Vocabulary)
			cmd.Printf("  Hash: %s\n", shortHash(snap.Hash))
			cmd.Printf("  Loaded: %s\n", snap.LoadedAt.Format("2006-01-02 15:04:05"))
		} else {
			cmd.Println("  Loaded: never")
		}
		cmd.Println()
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
