package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for storedesk.

Pick a catalogue kind from the menu to open its lookup popup, type to
search, and press Enter to choose a row. The last pick of every kind is
remembered.

Controls:
  ↑/k, ↓/j      - Navigate
  Enter         - Open / Choose
  PgUp/PgDn     - Previous / next page
  Esc           - Close popup
  x             - Forget the last pick
  q             - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Recover so a render panic leaves a stack trace instead of a garbled screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if lookupService == nil || recentService == nil {
		return errors.New("lookup services not configured")
	}

	// Verbose logs would corrupt the alt screen.
	if verbose {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		closeLog, err := logger.OpenFile(dir)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer closeLog() //nolint:errcheck
	}

	ports := tui.NewPorts(lookupService, recentService)
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if app.Settings().Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
