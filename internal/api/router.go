package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinilab/auth-service/internal/api/handler"
	"github.com/clinilab/auth-service/internal/api/middleware"
	"github.com/clinilab/auth-service/internal/core/domain"
	"github.com/clinilab/auth-service/internal/core/ports"
)

// Dependencies carries everything the router needs wired in from main.
type Dependencies struct {
	AuthService ports.AuthService
	Tokens      ports.TokenService
	Accounts    ports.AccountRepository
	Limiter     middleware.Limiter
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
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
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("labauth"))

	// --- Guards ---
	authGuard := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RequireRole(deps.Accounts, domain.RoleAdmin)
	loginLimit := middleware.LoginRateLimit(deps.Limiter, deps.Logger)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/auth/login", authHandler.Login, loginLimit)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/me", authHandler.Me, authGuard)
	e.POST("/auth/change-password", authHandler.ChangePassword, authGuard)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(deps.AuthService)
	admin := e.Group("/admin", authGuard, adminOnly)
	admin.GET("/accounts", adminHandler.List)
	admin.POST("/accounts", adminHandler.Create)
	admin.GET("/accounts/:id", adminHandler.Get)
	admin.PUT("/accounts/:id", adminHandler.Update)
	admin.POST("/accounts/:id/toggle", adminHandler.ToggleActive)
	admin.POST("/accounts/:id/reset-password", adminHandler.ResetPassword)
	admin.GET("/roles", adminHandler.Roles)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
