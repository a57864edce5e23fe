package middleware

import (
	"net/http"

	"github.com/deppfellow/heroes/internal/errs"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/deppfellow/heroes/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware every route shares, plus the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger logs one "API" line per request at a level chosen from
// the final status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// The error handler writes the response after this runs, so an
			// error's status has to be read from the error itself.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusFromError(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func statusFromError(err error) int {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code
	}
	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// Recover turns handler panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableErrorHandler: true,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// GlobalErrorHandler renders every error as an errs.HTTPError body.
//
// Errors that are not HTTP errors already go through sqlerr, which maps
// database failures and falls back to a generic 500. The original error is
// logged, never sent to the client.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var override bool
	var fieldErrors []errs.FieldError

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		override = httpErr.Override
		fieldErrors = httpErr.Errors

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))
		message = http.StatusText(status)
	}

	logger := GetLogger(c)

	var event *zerolog.Event
	if status >= http.StatusInternalServerError {
		event = logger.Error().Stack()
	} else {
		event = logger.Warn()
	}
	if sqlCode := sqlerr.ErrCode(originalErr); sqlCode != sqlerr.Other {
		event = event.Str("sql_error", string(sqlCode))
	}
	event.
		Err(originalErr).
		Int("status", status).
		Str("error_code", code).
		Msg(message)

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   status,
			Override: override,
			Errors:   fieldErrors,
		})
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}
