package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storedesk/storedesk-cli/internal/adapters/driven/seed"
	"github.com/storedesk/storedesk-cli/internal/adapters/driving/httpapi"
	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

var (
	serveAddr  string
	serveWatch string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over a REST API",
	Long: `Starts the REST API that remote storedesk clients use with --remote.

Endpoints:
  GET    /api/kinds
  GET    /api/{kind}?page=&page_size=&search=
  GET    /api/{kind}/{id}
  POST   /api/{kind}
  DELETE /api/{kind}/{id}

Use --watch to import a seed file on start and again whenever it changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveWatch, "watch", "", "seed file to import and keep watching")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if lookupService == nil || catalogueService == nil {
		return errors.New("lookup services not configured")
	}

	server, err := httpapi.NewServer(lookupService, catalogueService)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if serveWatch != "" {
		records, err := seed.Load(serveWatch)
		if err != nil {
			return err
		}
		if err := importSeed(ctx, cmd, records); err != nil {
			return err
		}

		go func() {
			err := seed.Watch(ctx, serveWatch, func(records []domain.Record, err error) {
				if err != nil {
					logger.Warn("seed reload failed: %v", err)
					return
				}
				if err := importSeed(ctx, cmd, records); err != nil {
					logger.Warn("%v", err)
				}
			})
			if err != nil {
				logger.Warn("seed watch stopped: %v", err)
			}
		}()
	}

	cmd.Printf("REST API listening on %s\n", serveAddr)
	return server.ListenAndServe(ctx, serveAddr)
}

func importSeed(ctx context.Context, cmd *cobra.Command, records []domain.Record) error {
	n, err := catalogueService.Import(ctx, records)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	cmd.Printf("Imported %d records from %s\n", n, serveWatch)
	return nil
}
