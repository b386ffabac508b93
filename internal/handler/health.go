package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const readinessProbeTimeout = 5 * time.Second

// Health is a liveness probe for load balancers. It only proves the process
// answers HTTP.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// HealthCheck is a named dependency probe.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Readiness runs every check in order and reports the first failure with a
// 503. With no failures it answers {"status":"ready"}.
func Readiness(checks ...HealthCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
		defer cancel()

		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{
					"status":       "unhealthy",
					"failed_check": hc.Name,
					"error":        err.Error(),
				})
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	}
}
