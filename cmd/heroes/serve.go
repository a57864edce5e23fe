package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/heroes/internal/handler"
	"github.com/deppfellow/heroes/internal/repository"
	"github.com/deppfellow/heroes/internal/router"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/deppfellow/heroes/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Ensure the database schema and serve HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		loggerService.Shutdown()
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}

	if err := srv.EnsureSchema(ctx); err != nil {
		log.Error().Err(err).Msg("failed to ensure database schema")
		return errors.Join(err, shutdown())
	}

	repos := repository.NewRepositories()
	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("failed to create services")
		return errors.Join(err, shutdown())
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		log.Error().Err(err).Msg("server stopped unexpectedly")
		return errors.Join(err, shutdown())
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	if err := shutdown(); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
