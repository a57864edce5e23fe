// Package model holds the plain data records of the service. Persistence
// mechanics live in the database and repository packages.
package model

// SecretNamePrefix is prepended to a hero's name to derive its secret name.
const SecretNamePrefix = "secrete_"

// Hero is a row of the hero table.
//
// ID is assigned by the database on insert. Age is reserved: no write path
// sets it yet, so it is always null for heroes created through the API.
type Hero struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Age        *int32 `json:"age" db:"age"`
	SecretName string `json:"secret_name" db:"secret_name"`
}

// SecretNameFor derives the secret name stored for a hero called name.
func SecretNameFor(name string) string {
	return SecretNamePrefix + name
}

// NewHero builds an unsaved hero with its derived secret name.
func NewHero(name string) *Hero {
	return &Hero{
		Name:       name,
		SecretName: SecretNameFor(name),
	}
}
