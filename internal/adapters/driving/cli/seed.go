package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/adapters/driven/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Import records from a YAML seed file",
	Long: `Imports records from a YAML file. Existing records with the same kind
and ID are replaced.

File format:
  records:
    - kind: customer
      id: C001
      fields:
        name: Acme Traders
        city: Pune`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}

	records, err := seed.Load(args[0])
	if err != nil {
		return err
	}

	n, err := catalogueService.Import(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d records from %s\n", n, args[0])
	return nil
}
