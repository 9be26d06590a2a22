package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/job-board/internal/middleware"
	"github.com/deppfellow/job-board/internal/server"
	"github.com/labstack/echo/v4"
)

// DefaultHealthCheckTimeout bounds each dependency ping unless
// observability.health_checks.timeout says otherwise.
const DefaultHealthCheckTimeout = 5 * time.Second

// HealthHandler reports whether the service and its dependencies are up.
// Both PostgreSQL and Redis are required: without Redis nobody can sign in.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthCheck is the result of one dependency ping.
type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// CheckHealth answers 200 when every dependency answers a ping and 503
// otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]HealthCheck, 2),
	}

	pings := []struct {
		name string
		ping func(ctx context.Context) error
	}{
		{"database", func(ctx context.Context) error { return h.server.DB.Pool.Ping(ctx) }},
		{"redis", func(ctx context.Context) error { return h.server.Redis.Ping(ctx).Err() }},
	}

	for _, p := range pings {
		if !h.checkEnabled(p.name) {
			continue
		}

		check := h.check(c.Request().Context(), p.ping)
		response.Checks[p.name] = check

		if check.Error == "" {
			logger.Debug().Str("check", p.name).Str("response_time", check.ResponseTime).Msg("health check passed")
			continue
		}

		response.Status = "unhealthy"
		logger.Error().
			Str("check", p.name).
			Str("response_time", check.ResponseTime).
			Str("error", check.Error).
			Msg("health check failed")
		h.recordFailure(p.name, check.Error)
	}

	if response.Status != "healthy" {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) check(parent context.Context, ping func(ctx context.Context) error) HealthCheck {
	ctx, cancel := context.WithTimeout(parent, h.timeout())
	defer cancel()

	start := time.Now()
	err := ping(ctx)

	check := HealthCheck{
		Status:       "healthy",
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		check.Status = "unhealthy"
		check.Error = err.Error()
	}
	return check
}

// checkEnabled reports whether the named check is configured to run. All
// checks run when observability is not configured.
func (h *HealthHandler) checkEnabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HealthCheckEnabled(name)
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return DefaultHealthCheckTimeout
}

// recordFailure sends a HealthCheckError custom event when New Relic runs.
func (h *HealthHandler) recordFailure(checkType, message string) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":    checkType,
		"operation":     "health_check",
		"error_type":    checkType + "_unhealthy",
		"error_message": message,
	})
}
