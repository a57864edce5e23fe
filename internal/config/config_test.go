package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HEROES_DATABASE__USERNAME", "winnie")
	t.Setenv("HEROES_DATABASE__PASSWORD", "p@ss:word")
	t.Setenv("HEROES_DATABASE__NAME", "heroes")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "winnie", cfg.Database.Username)
	assert.Equal(t, "heroes", cfg.Database.Name)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Integration.EmailEnabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HEROES_PRIMARY__ENV", "production")
	t.Setenv("HEROES_DATABASE__HOST", "localhost")
	t.Setenv("HEROES_DATABASE__PORT", "6543")
	t.Setenv("HEROES_DATABASE__SSL_MODE", "disable")
	t.Setenv("HEROES_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("HEROES_REDIS__ADDRESS", "redis:6379")
	t.Setenv("HEROES_OBSERVABILITY__LOGGING__SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 250*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{name: "username", missing: "HEROES_DATABASE__USERNAME"},
		{name: "password", missing: "HEROES_DATABASE__PASSWORD"},
		{name: "database name", missing: "HEROES_DATABASE__NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.missing, "")

			cfg, err := LoadConfig()
			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, "config validation failed")
		})
	}
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HEROES_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestGet_EvaluatesOnce(t *testing.T) {
	setRequiredEnv(t)

	first, err := Get()
	require.NoError(t, err)

	t.Setenv("HEROES_DATABASE__NAME", "changed")

	second, err := Get()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "heroes", second.Database.Name)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		Username: "winnie",
		Password: "p@ss:word",
		Name:     "heroes",
		SSLMode:  "prefer",
	}

	assert.Equal(t,
		"postgresql://winnie:p%40ss%3Aword@db:5432/heroes?sslmode=prefer",
		d.ConnectionString(),
	)
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}

func TestHealthChecksConfig_Runs(t *testing.T) {
	h := HealthChecksConfig{Enabled: true, Checks: []string{"database"}}
	assert.True(t, h.Runs("database"))
	assert.False(t, h.Runs("redis"))

	h.Enabled = false
	assert.False(t, h.Runs("database"))
}
