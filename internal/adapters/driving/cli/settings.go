package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change selector and remote settings.

Settings are stored in config.toml inside the data directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Available keys:
  ` + strings.Join(services.SettingKeys(), "\n  ") + `

Examples:
  storedesk settings set selector.debounce_ms 250
  storedesk settings set selector.max_height 70%
  storedesk settings set remote.variants search,q`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
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

	cmd.Println("[Selector]")
	cmd.Printf("  Debounce: %dms\n", settings.Selector.DebounceMs)
	cmd.Printf("  Page size: %d\n", settings.Selector.PageSize)
	cmd.Printf("  Breakpoint: %d\n", settings.Selector.Breakpoint)
	cmd.Printf("  Max height: %s\n", settings.Selector.MaxHeight)
	cmd.Printf("  Mouse: %s\n", onOff(settings.Selector.Mouse))
	cmd.Println()

	cmd.Println("[Remote]")
	if settings.Remote.Enabled() {
		cmd.Printf("  URL: %s\n", settings.Remote.URL)
	} else {
		cmd.Printf("  URL: (not set, using local store)\n")
	}
	cmd.Printf("  Variants: %s\n", strings.Join(settings.Remote.Variants, ", "))
	cmd.Printf("  Rate: %d/s\n", settings.Remote.RatePerSecond)
	cmd.Println()

	if path := settingsService.Path(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s set to %s\n", args[0], args[1])
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
