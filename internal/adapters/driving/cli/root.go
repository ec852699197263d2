// Package cli implements the storedesk command line interface.
// It is the composition root: persistent flags decide which stores and
// item source back the services every subcommand uses.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/adapters/driven/config/file"
	"github.com/storedesk/storedesk-cli/internal/adapters/driven/rest"
	"github.com/storedesk/storedesk-cli/internal/adapters/driven/storage/memory"
	"github.com/storedesk/storedesk-cli/internal/adapters/driven/storage/sqlite"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
	"github.com/storedesk/storedesk-cli/internal/core/services"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// annotationNoServices marks commands that run without wiring services.
const annotationNoServices = "storedesk/no-services"

var version = "dev"

// Persistent flags.
var (
	verbose   bool
	dataDir   string
	remoteURL string
	ephemeral bool
)

// Services used by subcommands. Set by setupServices or SetServices.
var (
	lookupService    driving.LookupService
	catalogueService driving.CatalogueService
	recentService    driving.RecentService
	settingsService  driving.SettingsService

	// wired is set when setupServices built the services above.
	wired         bool
	closeServices func() error
)

var rootCmd = &cobra.Command{
	Use:   "storedesk",
	Short: "Catalogue lookups for the shop counter",
	Long: `storedesk keeps the lookup catalogues of a store (customers, items,
colours, designs, taxes, users and groups) and lets you pick from them in a
searchable popup list.

Records live in a local SQLite database under ~/.storedesk unless --remote
points lookups at another storedesk (or any compatible REST backend).`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for config and data (default ~/.storedesk)")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "fetch lookups from a REST backend at this URL")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep records in memory only")
}

// Execute runs the root command.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Lookup    driving.LookupService
	Catalogue driving.CatalogueService
	Recent    driving.RecentService
	Settings  driving.SettingsService
}

// SetServices injects pre-built services, skipping flag-based wiring.
// Passing nil clears them.
func SetServices(s *Services) {
	if s == nil {
		lookupService, catalogueService, recentService, settingsService = nil, nil, nil, nil
		return
	}
	lookupService = s.Lookup
	catalogueService = s.Catalogue
	recentService = s.Recent
	settingsService = s.Settings
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[annotationNoServices] == "true" || lookupService != nil {
		return nil
	}

	dir, err := resolveDataDir()
	if err != nil {
		return err
	}
	logger.Section("Startup")
	logger.Debug("data dir: %s", dir)

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	var (
		records driven.RecordStore
		cache   driven.Cache
	)
	if ephemeral {
		logger.Debug("using in-memory store")
		records = memory.NewRecordStore()
		cache = memory.NewCache()
		closeServices = nil
	} else {
		store, err := sqlite.NewStore(filepath.Join(dir, "data"))
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		logger.Debug("using sqlite store at %s", store.Path())
		records = store.RecordStore()
		cache = store.Cache()
		closeServices = store.Close
	}

	lookup := services.NewLookupService(records, settings.Selector.PageSize)
	source, err := remoteSource(settings.Remote)
	if err != nil {
		return err
	}
	if source != nil {
		lookup.SetItemSource(source)
	}

	SetServices(&Services{
		Lookup:    lookup,
		Catalogue: services.NewCatalogueService(records),
		Recent:    services.NewRecentService(cache),
		Settings:  settingsSvc,
	})
	wired = true
	return nil
}

// remoteSource builds the REST item source when --remote or remote.url is set.
// The flag wins over the config file.
func remoteSource(cfg domain.RemoteSettings) (driven.ItemSource, error) {
	if remoteURL != "" {
		cfg.URL = remoteURL
	}
	if !cfg.Enabled() {
		return nil, nil
	}

	logger.Debug("using remote item source %s (variants %v)", cfg.URL, cfg.Variants)
	source, err := rest.NewItemSource(rest.Config{
		BaseURL:       cfg.URL,
		Variants:      cfg.Variants,
		RatePerSecond: cfg.RatePerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring remote: %w", err)
	}
	return source, nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if !wired {
		return nil
	}
	var err error
	if closeServices != nil {
		err = closeServices()
	}
	closeServices = nil
	wired = false
	SetServices(nil)
	return err
}

func resolveDataDir() (string, error) {
	if dataDir != "" {
		return dataDir, nil
	}
	return file.DefaultDir()
}

// parseKindArg resolves a kind argument, naming the valid kinds on failure.
func parseKindArg(arg string) (domain.Kind, error) {
	kind, err := domain.ParseKind(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %q (expected one of %v)", domain.ErrUnknownKind, arg, domain.AllKinds())
	}
	return kind, nil
}
