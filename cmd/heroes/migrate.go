package main

import (
	"context"

	"github.com/deppfellow/heroes/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context())
		},
	}
}

func migrate(ctx context.Context) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	db, err := database.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize database")
		return err
	}
	defer db.Close()

	if err := db.CreateSchema(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create database schema")
		return err
	}

	return nil
}
