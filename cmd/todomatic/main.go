// Package main is the entry point for the todomatic CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todomatic/internal/backend/googletasks"
	"todomatic/internal/cli"
	"todomatic/internal/commands"
	"todomatic/internal/config"
	"todomatic/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Import reads from Google Tasks; everything else stays local.
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.OpenSession, factory)
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
