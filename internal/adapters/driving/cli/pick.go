package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/tui"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

var (
	pickSearch string
	pickJSON   bool
)

var pickCmd = &cobra.Command{
	Use:   "pick [kind]",
	Short: "Pick one record from a lookup popup",
	Long: `Opens the lookup popup for a kind and prints the chosen record.

The selection is remembered, so the TUI menu shows it as the last pick.
When stdout is not a terminal the first page of matches is printed
instead, which keeps pick usable from scripts.

Examples:
  storedesk pick customer
  storedesk pick item --search bolt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVarP(&pickSearch, "search", "s", "", "initial search term")
	pickCmd.Flags().BoolVar(&pickJSON, "json", false, "output the record as JSON")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	if !isTerminal(cmd.OutOrStdout()) {
		items, err := lookupService.Fetch(cmd.Context(), kind, 1, pickSearch)
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		return outputItems(cmd, kind, items, pickJSON)
	}

	app, err := tui.NewPickApp(lookupService, settingsService, kind, pickSearch)
	if err != nil {
		return err
	}
	item, err := app.Run()
	if err != nil {
		return fmt.Errorf("picker error: %w", err)
	}
	if item == nil {
		cmd.PrintErrln("Nothing picked.")
		return nil
	}

	if recentService != nil {
		if err := recentService.Remember(cmd.Context(), kind, item); err != nil {
			return fmt.Errorf("remembering pick: %w", err)
		}
	}

	if pickJSON {
		return outputJSON(cmd, item)
	}
	cmd.Printf("%s\t%s\n", item.Field(domain.FieldID), item.Field(domain.FieldName))
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
