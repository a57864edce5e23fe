//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/heroes/internal/config"
	"github.com/deppfellow/heroes/internal/database"
	"github.com/deppfellow/heroes/internal/model"
	"github.com/deppfellow/heroes/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *database.Database {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("heroes"),
		postgres.WithUsername("winnie"),
		postgres.WithPassword("secret"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Int(),
			Username: "winnie",
			Password: "secret",
			Name:     "heroes",
			SSLMode:  "disable",
		},
		Observability: config.DefaultObservabilityConfig(),
	}

	logger := zerolog.Nop()
	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, db.CreateSchema(ctx))
	require.NoError(t, db.CreateSchema(ctx))

	var tables int
	err := db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = 'hero'`,
	).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 1, tables)

	var indexes int
	err = db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM pg_indexes WHERE tablename = 'hero' AND indexname IN ('ix_hero_name', 'ix_hero_age')`,
	).Scan(&indexes)
	require.NoError(t, err)
	assert.Equal(t, 2, indexes)
}

func TestHeroRepository_CreateAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	require.NoError(t, db.CreateSchema(ctx))

	var first, second *model.Hero
	err := database.WithSession(ctx, db, func(s database.Session) error {
		var err error
		first, err = repository.NewHeroRepository(s).Create(ctx, model.NewHero("Spiderboy"))
		return err
	})
	require.NoError(t, err)

	err = database.WithSession(ctx, db, func(s database.Session) error {
		var err error
		second, err = repository.NewHeroRepository(s).Create(ctx, model.NewHero("Spiderboy"))
		return err
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "secrete_Spiderboy", first.SecretName)
	assert.Nil(t, first.Age)

	var stored int
	err = db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM hero WHERE name = $1 AND secret_name = $2 AND age IS NULL`,
		"Spiderboy", "secrete_Spiderboy",
	).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	assert.Equal(t, int32(0), db.Pool.Stat().AcquiredConns())
}
