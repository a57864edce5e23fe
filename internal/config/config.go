// Package config manages environment variables.
//
// It reads variables from the process environment (and the `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the HEROES_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore marks one nesting level:

	  HEROES_DATABASE__USERNAME -> database.username -> Config.Database.Username
	  HEROES_SERVER__PORT       -> server.port       -> Config.Server.Port

	Single underscores stay part of the key (ssl_mode, read_timeout).
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "HEROES_"

// ServiceName labels logs, traces and the New Relic application.
const ServiceName = "heroes"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero, the default, disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Pool fields left at zero keep the pgxpool defaults.
type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	Username        string        `koanf:"username" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=0"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0"`
	MaxConnLifetime time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
}

// ConnectionString renders the pgx connection URL:
//
//	postgresql://<user>:<password>@<host>:<port>/<name>?sslmode=<mode>
//
// User and password are escaped so characters like '@' or ':' cannot break
// the URL structure.
func (d DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; an empty address disables Redis and background jobs.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// IntegrationConfig stores credentials for third-party services.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`

	// RosterEmail receives a notification for every newly created hero.
	RosterEmail string `koanf:"roster_email" validate:"omitempty,email"`

	EmailFrom string `koanf:"email_from" validate:"required"`
}

// EmailEnabled reports whether roster notifications can be mailed.
func (i IntegrationConfig) EmailEnabled() bool {
	return i.ResendAPIKey != "" && i.RosterEmail != ""
}

// defaultConfig is loaded before the environment so every optional key has
// a value. Required credentials are deliberately left empty.
func defaultConfig() Config {
	return Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Host:    "db",
			Port:    5432,
			SSLMode: "prefer",
		},
		Integration: IntegrationConfig{
			EmailFrom: "Heroes <onboarding@resend.dev>",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey converts a raw env var name into a koanf key.
//
//	HEROES_DATABASE__SSL_MODE -> database.ssl_mode
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the resulting config.
//
// Any failure is a configuration error: callers at startup treat it as fatal.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	// Env values arrive as strings; list keys such as
	// server.cors_allowed_origins are comma separated.
	mainConfig := &Config{}
	err := k.UnmarshalWithConf("", mainConfig, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           mainConfig,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces stay consistent.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

var loadOnce = sync.OnceValues(LoadConfig)

// Get returns the process-wide configuration. LoadConfig runs at most once;
// later calls return the same value (or the same error).
func Get() (*Config, error) {
	return loadOnce()
}
