package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

var facetsJSON bool

var facetsCmd = &cobra.Command{
	Use:       "facets <jobs|courses>",
	Short:     "List the filter values available in a corpus",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"jobs", "courses"},
	RunE:      runFacets,
}

func init() {
	facetsCmd.Flags().BoolVar(&facetsJSON, "json", false, "output facets as JSON")
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}

	kind, err := domain.ParseCorpusKind(args[0])
	if err != nil {
		return fmt.Errorf("unknown corpus %q: expected jobs or courses", args[0])
	}

	facets, err := corpusService.Facets(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("load facets: %w", err)
	}

	if facetsJSON {
		data, err := json.MarshalIndent(facets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal facets: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	groups := []struct {
		flag   string
		values []string
	}{
		{"--experience", facets.ExperienceLevels},
		{"--work-type", facets.WorkTypes},
		{"--company", facets.Companies},
		{"--country", facets.Countries},
		{"--site", facets.Sites},
		{"--category", facets.Categories},
		{"--subtitle", facets.Subtitles},
	}

	cmd.Printf("%s filters\n\n", kind.Description())
	for _, g := range groups {
		if len(g.values) == 0 {
			continue
		}
		cmd.Printf("%s (%d)\n", g.flag, len(g.values))
		cmd.Printf("  %s\n\n", strings.Join(g.values, ", "))
	}
	return nil
}
