package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/clinica/citas/internal/config"
	"github.com/clinica/citas/internal/domain/citas"
	"github.com/clinica/citas/internal/platform/httpx"
	"github.com/clinica/citas/internal/platform/metrics"
	"github.com/clinica/citas/internal/platform/middleware"
)

const rootMessage = "Backend de Citas Médicas funcionando!"

// newServer builds the router with the full middleware chain. dbHealth is
// mounted at /health/db.
func newServer(cfg *config.Config, logger zerolog.Logger, svc *citas.Service, m *metrics.Metrics, dbHealth echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(m.Middleware())

	e.GET("/", func(c echo.Context) error {
		return httpx.JSON(c, http.StatusOK, httpx.Message(rootMessage))
	})
	e.GET("/health/db", dbHealth)
	e.GET("/metrics", m.Handler())

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api := e.Group("/api", middleware.RateLimit(rateLimitCfg))
	citas.NewHandler(svc).RegisterRoutes(api.Group("/citas"))

	return e
}
