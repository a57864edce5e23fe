package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	return &config.Config{
		Primary: config.Primary{Env: "development"},
		Database: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     1,
			Username: "winnie",
			Password: "secret",
			Name:     "heroes",
			SSLMode:  "disable",
		},
		Observability: obs,
	}
}

func TestNew_IsLazy(t *testing.T) {
	logger := zerolog.Nop()

	db, err := New(testConfig(), &logger, nil)
	require.NoError(t, err, "constructing the pool must not dial the database")
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, db.Ping(ctx), "the unreachable database surfaces on first use")
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	logger := zerolog.Nop()
	cfg := testConfig()
	cfg.Database.SSLMode = "bogus"

	_, err := New(cfg, &logger, nil)
	assert.ErrorContains(t, err, "failed to parse pgx pool config")
}

func TestNewTracer_Selection(t *testing.T) {
	logger := zerolog.Nop()
	obs := config.DefaultObservabilityConfig()

	obs.Logging.SlowQueryThreshold = 0
	assert.Nil(t, newTracer(obs, &logger, nil))

	obs.Logging.SlowQueryThreshold = time.Second
	assert.IsType(t, &slowQueryTracer{}, newTracer(obs, &logger, nil))

	obs.Environment = "local"
	tracer := newTracer(obs, &logger, nil)
	require.NotNil(t, tracer)
	_, single := tracer.(*slowQueryTracer)
	assert.False(t, single, "local env chains the console tracer with the slow query tracer")

	obs.Logging.SlowQueryThreshold = 0
	assert.IsType(t, &tracelog.TraceLog{}, newTracer(obs, &logger, nil))
}

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer := newSlowQueryTracer(&logger, 100*time.Millisecond)
	tracer.now = func() time.Time { return clock }

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT fast"})
	clock = clock.Add(10 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	assert.Zero(t, buf.Len())

	ctx = tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT slow"})
	clock = clock.Add(250 * time.Millisecond)
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	assert.Contains(t, buf.String(), `"message":"slow query"`)
	assert.Contains(t, buf.String(), `"sql":"SELECT slow"`)
}
