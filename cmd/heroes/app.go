package main

import (
	"fmt"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/logger"
	"github.com/rs/zerolog"
)

// bootstrap loads the configuration and builds the root logger shared by
// every subcommand.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to start logger service: %w", err)
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
