// Command storedesk is the store catalogue lookup CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/storedesk/storedesk-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
