// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const timeFormat = "2006-01-02 15:04:05"

// LoggerService owns the optional New Relic application.
//
// A LoggerService with a nil application is valid: every integration
// checks GetApplication() before instrumenting.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService starts the New Relic agent when a license key is configured.
func NewLoggerService(cfg *config.ObservabilityConfig) (*LoggerService, error) {
	service := &LoggerService{}

	if !cfg.NewRelic.Enabled() {
		return service, nil
	}

	options := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"environment": cfg.Environment}
		},
	}
	if cfg.NewRelic.DebugLogging {
		options = append(options, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	service.nrApp = app
	return service, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes pending New Relic data.
func (ls *LoggerService) Shutdown() {
	if ls != nil && ls.nrApp != nil {
		ls.nrApp.Shutdown(10 * time.Second)
	}
}

// NewLoggerWithService builds the root application logger.
//
// Production with JSON format writes structured lines to stdout, decorated by
// the New Relic zerolog writer when the agent is running. Every other setup
// gets a human readable console writer.
func NewLoggerWithService(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	return newLogger(cfg, loggerService, os.Stdout)
}

func newLogger(cfg *config.ObservabilityConfig, loggerService *LoggerService, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.GetLogLevel())

	zerolog.TimeFieldFormat = timeFormat
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer
	if cfg.Logging.Format == "json" {
		writer = out
		if app := loggerService.GetApplication(); app != nil {
			writer = zerologWriter.New(out, app)
		}
	} else {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()

	if !cfg.IsProduction() {
		logger = logger.With().Stack().Logger()
	}

	return logger
}

// ParseLevel maps a configured level name to zerolog, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithTraceContext adds the New Relic trace and span ids to a logger so log
// lines can be joined with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// NewPgxLogger returns the console logger used for SQL tracing in local env.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("database", "postgres").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level into the pgx tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
