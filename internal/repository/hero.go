package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/heroes/internal/database"
	"github.com/deppfellow/heroes/internal/model"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// HeroTable is the table heroes are stored in.
const HeroTable = "hero"

var heroColumns = []string{"id", "name", "age", "secret_name"}

// HeroStore persists heroes.
type HeroStore interface {
	Create(ctx context.Context, hero *model.Hero) (*model.Hero, error)
}

// HeroRepository stores heroes in PostgreSQL.
type HeroRepository struct {
	db database.Session
}

// NewHeroRepository binds a hero repository to a session.
func NewHeroRepository(db database.Session) *HeroRepository {
	return &HeroRepository{db: db}
}

// Create inserts hero and returns the stored row, including the id assigned
// by the database. Any id already set on hero is ignored.
func (r *HeroRepository) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	query, args, err := squirrel.Insert(HeroTable).
		Columns("name", "age", "secret_name").
		Values(hero.Name, hero.Age, hero.SecretName).
		Suffix("RETURNING " + strings.Join(heroColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}

	var created model.Hero
	if err := pgxscan.Get(ctx, r.db, &created, query, args...); err != nil {
		return nil, fmt.Errorf("inserting hero: %w", err)
	}

	return &created, nil
}
