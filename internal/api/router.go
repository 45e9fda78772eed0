package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ecell-iiitr/gatepass/internal/api/handler"
	"github.com/ecell-iiitr/gatepass/internal/api/middleware"
	"github.com/ecell-iiitr/gatepass/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed once in main.
type Dependencies struct {
	AuthService        ports.AuthService
	ParticipantService ports.ParticipantService
	Store              ports.Pinger
	Redis              *redis.Client // nil when Redis is not configured
	JWTSecret          string
	Logger             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS()) // the dashboard SPA is served from another origin
	e.Use(echoprometheus.NewMiddleware("gatepass"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	participantHandler := handler.NewParticipantHandler(deps.ParticipantService)
	authRequired := middleware.Auth(deps.JWTSecret)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)

	// --- Protected routes ---
	e.GET("/participant/:id", participantHandler.Get, authRequired)
	e.PUT("/participant/:id/checkin", participantHandler.CheckIn, authRequired)
	e.GET("/participants", participantHandler.History, authRequired)
	e.GET("/participants/export", participantHandler.Export, authRequired)
	e.GET("/stats", participantHandler.Stats, authRequired)

	// --- Health probes & metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
