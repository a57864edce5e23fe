package config

import (
	"fmt"
	"slices"
	"time"
)

// ObservabilityConfig groups logging, APM and health check settings.
//
// It lives under Config.Observability and may be omitted entirely, in which
// case DefaultObservabilityConfig is used.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs and APM dashboards.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment splits telemetry by deployment (production, development...).
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold flags SQL statements that take longer than this.
	// Env values are duration strings such as "100ms" or "1s". Zero disables
	// slow query logging.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey keeps the agent disabled.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// Enabled reports whether the New Relic agent should start.
func (n NewRelicConfig) Enabled() bool {
	return n.LicenseKey != ""
}

// HealthChecksConfig controls the dependency checks run by GET /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout bounds each individual dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the dependencies to probe ("database", "redis").
	Checks []string `koanf:"checks"`
}

// Runs reports whether the named check is enabled.
func (h HealthChecksConfig) Runs(check string) bool {
	return h.Enabled && slices.Contains(h.Checks, check)
}

// DefaultObservabilityConfig is used when Config.Observability is not set.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		// Overwritten in LoadConfig.
		ServiceName: ServiceName,
		Environment: "development",

		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},

		// New Relic stays disabled until a license key is supplied.
		NewRelic: NewRelicConfig{
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
		},

		// Redis is only probed when an address is configured.
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{"database", "redis"},
		},
	}
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

// Validate applies rules that struct tags cannot express.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	if level := c.GetLogLevel(); !slices.Contains(validLevels, level) {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", level)
	}

	if !slices.Contains(validFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging format: %s (must be one of: json, console)", c.Logging.Format)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level.
//
// An unset level defaults to "info" in production and "debug" anywhere else.
func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	if c.IsProduction() {
		return "info"
	}
	return "debug"
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// IsLocal reports whether the application runs on a developer machine.
// SQL statements are traced to the console only in this mode.
func (c *ObservabilityConfig) IsLocal() bool {
	return c.Environment == "local"
}
