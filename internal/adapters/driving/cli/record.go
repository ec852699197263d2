package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
)

var (
	recordID     string
	recordFields map[string]string
	recordJSON   bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage catalogue records",
	Long:  `Add, inspect and remove the records behind the lookups.`,
}

var recordAddCmd = &cobra.Command{
	Use:   "add [kind]",
	Short: "Add a record",
	Long: `Adds a record of the given kind. Every record needs a name field.

Examples:
  storedesk record add customer --field name="Acme Traders" --field city=Pune
  storedesk record add tax --id GST18 --field name="GST 18%" --field rate=18`,
	Args: cobra.ExactArgs(1),
	RunE: runRecordAdd,
}

var recordGetCmd = &cobra.Command{
	Use:   "get [kind] [id]",
	Short: "Show a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runRecordGet,
}

var recordRemoveCmd = &cobra.Command{
	Use:     "remove [kind] [id]",
	Aliases: []string{"rm"},
	Short:   "Remove a record",
	Args:    cobra.ExactArgs(2),
	RunE:    runRecordRemove,
}

func init() {
	recordAddCmd.Flags().StringVar(&recordID, "id", "", "record ID (default: generated)")
	recordAddCmd.Flags().StringToStringVarP(&recordFields, "field", "f", nil, "field as key=value (repeatable)")
	recordGetCmd.Flags().BoolVar(&recordJSON, "json", false, "output the record as JSON")

	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordGetCmd)
	recordCmd.AddCommand(recordRemoveCmd)
	rootCmd.AddCommand(recordCmd)
}

func runRecordAdd(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	fields := make(map[string]any, len(recordFields))
	for k, v := range recordFields {
		fields[k] = v
	}

	rec, err := catalogueService.Add(cmd.Context(), domain.Record{
		ID:     recordID,
		Kind:   kind,
		Fields: fields,
	})
	if errors.Is(err, domain.ErrInvalidInput) {
		return fmt.Errorf("a %s needs a name: --field name=...", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	cmd.Printf("Added %s %s (%s)\n", kind, rec.ID, rec.Name())
	return nil
}

func runRecordGet(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	rec, err := catalogueService.Get(cmd.Context(), kind, args[1])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordJSON {
		return outputJSON(cmd, rec.Item())
	}

	cmd.Printf("ID:      %s\n", rec.ID)
	cmd.Printf("Kind:    %s\n", rec.Kind)
	cmd.Printf("Name:    %s\n", rec.Name())
	cmd.Printf("Created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("Updated: %s\n", rec.UpdatedAt.Format("2006-01-02 15:04"))
	item := domain.Item(rec.Fields)
	for _, k := range slices.Sorted(maps.Keys(rec.Fields)) {
		if k == domain.FieldName {
			continue
		}
		cmd.Printf("  %s: %s\n", k, item.Field(k))
	}
	return nil
}

func runRecordRemove(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}

	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}

	if err := catalogueService.Remove(cmd.Context(), kind, args[1]); err != nil {
		return fmt.Errorf("failed to remove record: %w", err)
	}

	cmd.Printf("Removed %s %s\n", kind, args[1])
	return nil
}
