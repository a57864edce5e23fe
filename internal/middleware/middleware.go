// Package middleware stores the global HTTP middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request logging, New Relic tracing, CORS, rate limiting and
// panic recovery. The global error handler that renders every error as an
// errs.HTTPError also lives here.
package middleware
