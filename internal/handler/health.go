package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/heroes/internal/middleware"
	"github.com/deppfellow/heroes/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler reports whether the service and its dependencies are
// reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth answers 200 when every required check passes and 503
// otherwise. The database is required. Redis is reported but optional, so
// its failure never turns the service unhealthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if cfg.Runs("database") {
		result := h.runCheck(c.Request().Context(), &logger, "database", cfg.Timeout, h.server.DB.Ping)
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if cfg.Runs("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.runCheck(c.Request().Context(), &logger, "redis", cfg.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")
		h.recordHealthCheckError("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(
	ctx context.Context,
	logger *zerolog.Logger,
	name string,
	timeout time.Duration,
	check func(context.Context) error,
) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")
		h.recordHealthCheckError(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return CheckResult{
		Status:       "healthy",
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthHandler) recordHealthCheckError(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
