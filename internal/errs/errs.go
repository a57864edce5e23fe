// Package errs defines the error shapes returned to API clients.
//
// Every failure that reaches the HTTP layer is rendered as an HTTPError so
// clients always receive the same JSON structure, with optional
// field-level details for validation failures.
package errs
