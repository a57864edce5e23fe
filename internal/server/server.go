// Package server defines the Server container that composes the app's main
// dependencies and owns their lifecycle:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - optional redis client and background job service (asynq)
//   - http.Server
//
// Startup is a small state machine: Stopped, then SchemaEnsured once
// EnsureSchema succeeds, then Serving once Start begins accepting requests.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/database"
	"github.com/deppfellow/heroes/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/heroes/internal/logger"
)

// ErrSchemaNotEnsured is returned by Start when EnsureSchema has not
// completed.
var ErrSchemaNotEnsured = errors.New("server: schema not ensured")

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database

	// Redis and Job are nil when no redis address is configured.
	Redis *redis.Client
	Job   *job.JobService

	httpServer *http.Server

	mu    sync.Mutex
	state State

	// createSchema is swapped in tests.
	createSchema func(ctx context.Context) error
}

// New constructs a Server and initializes core dependencies. Nothing
// connects to PostgreSQL here; the pool is lazy.
//
// Redis failing to answer a ping does not block startup. A job service that
// cannot start does.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		state:         StateStopped,
	}
	server.createSchema = db.CreateSchema

	if !cfg.Redis.Enabled() {
		logger.Info().Msg("redis address not configured, background jobs disabled")
		return server, nil
	}

	server.Redis = newRedisClient(cfg, logger, loggerService)

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger)
	if err := jobService.Start(); err != nil {
		_ = db.Close()
		_ = server.Redis.Close()
		return nil, fmt.Errorf("failed to start job service: %w", err)
	}
	server.Job = jobService

	return server, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to connect to redis, continuing without it")
	}

	return redisClient
}

// State reports the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// EnsureSchema creates the schema and moves the server from Stopped to
// SchemaEnsured. Calling it again after success is a no-op.
func (s *Server) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped {
		return nil
	}

	if err := s.createSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	s.state = StateSchemaEnsured
	s.Logger.Info().Str("state", s.state.String()).Msg("database schema ensured")
	return nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start serves HTTP until the server is shut down. It requires
// SetupHTTPServer and a successful EnsureSchema.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.mu.Lock()
	if s.state != StateSchemaEnsured {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: server is %s", ErrSchemaNotEnsured, state)
	}
	s.state = StateServing
	s.mu.Unlock()

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	s.mu.Lock()
	s.state = StateSchemaEnsured
	s.mu.Unlock()
	return err
}

// Shutdown gracefully stops the HTTP server and releases every dependency.
// In-flight requests get until ctx's deadline to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
	}

	s.LoggerService.Shutdown()

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	return errors.Join(errs...)
}
