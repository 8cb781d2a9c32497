// Package main is the entry point for the fmods CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"go.fmods.dev/fmods/cmd/fmods/commands"
	"go.fmods.dev/fmods/internal/adapters/config"
	"go.fmods.dev/fmods/internal/adapters/installer"
	"go.fmods.dev/fmods/internal/adapters/instance"
	"go.fmods.dev/fmods/internal/adapters/logger"
	"go.fmods.dev/fmods/internal/adapters/portal"
	"go.fmods.dev/fmods/internal/app"
	"go.fmods.dev/fmods/internal/core/domain"
	"go.fmods.dev/fmods/internal/core/ports"
)

func main() {
	if err := run(); err != nil {
		// zerr prints a report with metadata when formatted with %+v.
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	configStore, err := config.NewStore()
	if err != nil {
		return err
	}

	application := app.New(
		configStore,
		instance.NewLoader(),
		logger.New(),
		func(snapshot *domain.Snapshot) ports.Registry { return portal.NewClient(snapshot) },
		func(snapshot *domain.Snapshot) ports.Installer { return installer.New(snapshot) },
	)

	cli := commands.New(application)

	return cli.Execute(ctx)
}
