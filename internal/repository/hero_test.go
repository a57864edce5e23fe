package repository_test

import (
	"context"
	"testing"

	"github.com/deppfellow/heroes/internal/model"
	"github.com/deppfellow/heroes/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertHeroSQL = `INSERT INTO hero \(name,age,secret_name\) VALUES \(\$1,\$2,\$3\) RETURNING id, name, age, secret_name`

func heroRows(mock pgxmock.PgxPoolIface, id int64, name string) *pgxmock.Rows {
	var noAge *int32
	return mock.NewRows([]string{"id", "name", "age", "secret_name"}).
		AddRow(id, name, noAge, "secrete_"+name)
}

func TestHeroRepository_Create(t *testing.T) {
	t.Run("Should insert hero and return server assigned id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		hero := model.NewHero("Spiderboy")
		mock.ExpectQuery(insertHeroSQL).
			WithArgs("Spiderboy", hero.Age, "secrete_Spiderboy").
			WillReturnRows(heroRows(mock, 1, "Spiderboy"))

		created, err := repository.NewHeroRepository(mock).Create(context.Background(), hero)
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "Spiderboy", created.Name)
		assert.Equal(t, "secrete_Spiderboy", created.SecretName)
		assert.Nil(t, created.Age)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should never send a client supplied id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		hero := model.NewHero("Deadpond")
		hero.ID = 999
		mock.ExpectQuery(insertHeroSQL).
			WithArgs("Deadpond", pgxmock.AnyArg(), "secrete_Deadpond").
			WillReturnRows(heroRows(mock, 3, "Deadpond"))

		created, err := repository.NewHeroRepository(mock).Create(context.Background(), hero)
		require.NoError(t, err)
		assert.Equal(t, int64(3), created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should wrap storage errors", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "hero" does not exist`}
		mock.ExpectQuery(insertHeroSQL).
			WithArgs("Spiderboy", pgxmock.AnyArg(), "secrete_Spiderboy").
			WillReturnError(pgErr)

		created, err := repository.NewHeroRepository(mock).Create(context.Background(), model.NewHero("Spiderboy"))
		assert.Nil(t, created)
		assert.ErrorIs(t, err, pgErr)
		assert.ErrorContains(t, err, "inserting hero")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewRepositories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repos := repository.NewRepositories()
	require.NotNil(t, repos.Heroes)
	assert.IsType(t, &repository.HeroRepository{}, repos.Heroes(mock))
}
