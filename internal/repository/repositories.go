package repository

import (
	"github.com/deppfellow/heroes/internal/database"
)

// Repositories groups the repository constructors handed to the service
// layer. Each constructor binds a repository to one session.
type Repositories struct {
	Heroes func(database.Session) HeroStore
}

// NewRepositories returns the PostgreSQL-backed repositories.
func NewRepositories() *Repositories {
	return &Repositories{
		Heroes: func(s database.Session) HeroStore {
			return NewHeroRepository(s)
		},
	}
}
