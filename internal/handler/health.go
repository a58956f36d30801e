package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                     `json:"status"`
	Timestamp   time.Time                  `json:"timestamp"`
	Environment string                     `json:"environment"`
	Checks      map[string]dependencyCheck `json:"checks"`
}

// CheckHealth pings Postgres and Redis. A failing database makes the
// service unhealthy (503); Redis is optional, so a failing or missing
// Redis only marks the check as degraded.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]dependencyCheck),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Pool.Ping(ctx); err != nil {
		response.Status = "unhealthy"
		response.Checks["database"] = dependencyCheck{
			Status:       "unhealthy",
			ResponseTime: time.Since(dbStart).String(),
			Error:        err.Error(),
		}
		logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
		h.recordFailure("database", err, time.Since(dbStart))
	} else {
		response.Checks["database"] = dependencyCheck{Status: "healthy", ResponseTime: time.Since(dbStart).String()}
	}

	switch {
	case h.server.Redis == nil:
		response.Checks["redis"] = dependencyCheck{Status: "disabled"}
	default:
		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			response.Checks["redis"] = dependencyCheck{
				Status:       "degraded",
				ResponseTime: time.Since(redisStart).String(),
				Error:        err.Error(),
			}
			logger.Warn().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
			h.recordFailure("redis", err, time.Since(redisStart))
		} else {
			response.Checks["redis"] = dependencyCheck{Status: "healthy", ResponseTime: time.Since(redisStart).String()}
		}
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
	}

	if err := c.JSON(status, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
