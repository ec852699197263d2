package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

var (
	listPage   int
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List one page of records",
	Long: `Prints one page of a kind's lookup, filtered by --search.

Results come from the same lookup the popup uses, so the page size and
remote settings apply.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List catalogue kinds",
	RunE:  runKinds,
}

func init() {
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number (1-based)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search term")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(kindsCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	if listPage < 1 {
		return fmt.Errorf("page must be at least 1: %w", domain.ErrInvalidInput)
	}

	items, err := lookupService.Fetch(cmd.Context(), kind, listPage, listSearch)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	return outputItems(cmd, kind, items, listJSON)
}

// outputItems prints items as JSON or as a table of the kind's columns.
func outputItems(cmd *cobra.Command, kind domain.Kind, items []domain.Item, asJSON bool) error {
	if asJSON {
		return outputJSON(cmd, items)
	}

	if len(items) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	view, err := lookupService.View(kind)
	if err != nil {
		return err
	}

	headers := view.Headers
	if len(headers) == 0 {
		headers = view.DisplayKeys
	}

	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(view.DisplayKeys))
		for j, key := range view.DisplayKeys {
			row[j] = item.Field(key)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)

	cmd.Println(t.Render())
	cmd.Printf("%d results\n", len(items))
	return nil
}

func runKinds(cmd *cobra.Command, _ []string) error {
	if lookupService == nil {
		return errors.New("lookup service not configured")
	}

	for _, v := range lookupService.Kinds() {
		cmd.Printf("  %-10s %s\n", v.Kind, v.Title)
	}
	return nil
}
