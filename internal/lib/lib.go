// Package lib groups supporting modules that do not belong to one layer:
// background job processing (asynq over Redis) and the email client
// (Resend) used by those jobs.
package lib
