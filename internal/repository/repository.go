// Package repository handles all interactions with the database.
//
// Repositories are bound to one database.Session, so a request's reads and
// writes all go through the connection it acquired.
package repository
