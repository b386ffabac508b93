// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/circa/reservations/internal/handler"
	"github.com/circa/reservations/internal/middleware"
)

// NewEcho returns an Echo instance with the global middleware chain:
// recover, request id, access log, metrics and CORS.
func NewEcho(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	return e
}

// RegisterRoutes registers the operational endpoints: liveness, readiness
// and Prometheus metrics.
func RegisterRoutes(e *echo.Echo, checks ...handler.HealthCheck) {
	e.GET("/healthz", handler.Health)
	e.GET("/health/ready", handler.Readiness(checks...))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterReservations registers the reservation API. Reads go through the
// response cache; every route is rate limited.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, cache *middleware.ResponseCache, limiter echo.MiddlewareFunc) {
	g := e.Group(handler.ReservationsRoute, limiter)
	g.POST("", h.Create)
	g.GET("", h.List, cache.Middleware())
	g.GET("/:id", h.Get, cache.Middleware())
}

// RegisterHero registers the server-side poster renderer.
func RegisterHero(e *echo.Echo, p *handler.PosterHandler, cache *middleware.ResponseCache) {
	e.GET("/hero/poster.png", p.Render, cache.Middleware())
}

// RegisterSite serves the static page and its assets from site.
func RegisterSite(e *echo.Echo, site fs.FS) {
	e.StaticFS("/", site)
}
