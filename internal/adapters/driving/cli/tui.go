package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for TriStep.

Describe your skills and interests, then browse ranked jobs or courses
five at a time.

Controls:
  Enter     - Rank / Select
  ←/h, →/l  - Previous / next page
  ↑/k, ↓/j  - Navigate results
  ctrl+b    - Toggle popularity blend (courses)
  Esc       - Back
  q         - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the injected services.
func newTUIApp() (*tui.App, error) {
	if recommendService == nil || corpusService == nil {
		return nil, errors.New("recommend and corpus services not configured")
	}
	ports := tui.NewPorts(recommendService, corpusService, settingsService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := newTUIApp()
	if err != nil {
		return err
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
