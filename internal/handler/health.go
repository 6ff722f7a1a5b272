package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/portfolio/internal/middleware"
	"github.com/deppfellow/portfolio/internal/server"
)

// healthCheck probes one dependency. A failing critical check turns the
// whole response into a 503.
type healthCheck struct {
	name     string
	critical bool
	ping     func(ctx context.Context) error
}

// HealthHandler serves GET /status for monitors and load balancers.
type HealthHandler struct {
	Handler
	checks  []healthCheck
	timeout time.Duration
}

// NewHealthHandler registers the checks enabled in the observability
// config. Redis is optional for the portfolio, so its failure is reported
// without failing the check.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}

	obs := s.Config.Observability
	if obs == nil {
		return h
	}
	if obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}

	if obs.HealthCheckEnabled("database") && s.DB != nil {
		h.checks = append(h.checks, healthCheck{name: "database", critical: true, ping: s.DB.Ping})
	}

	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		h.checks = append(h.checks, healthCheck{
			name: "redis",
			ping: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	return h
}

// CheckHealth answers 200 when every critical check passes and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			checks[check.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if check.critical {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(check.name, elapsed, err)
			continue
		}

		checks[check.name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
