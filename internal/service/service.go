// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated input from the handler, opens a database session for the
// unit of work, and calls repository methods through that session.
package service
