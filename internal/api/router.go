package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tickethub/ticketing-api/internal/api/handler"
	"github.com/tickethub/ticketing-api/internal/api/middleware"
	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/auth/token"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/service"
	mongodb "github.com/tickethub/ticketing-api/internal/infrastructure/db/mongo"
	"github.com/tickethub/ticketing-api/internal/ratelimit"
)

// Deps carries the router's external collaborators. Redis may be nil; the
// login limiter must then be a process-local one.
type Deps struct {
	DB           *mongo.Database
	Redis        *redis.Client
	Codec        *token.Codec
	Hasher       *password.Hasher
	LoginLimiter ratelimit.Limiter
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ticketing"))
	e.Use(middleware.Identity(deps.Codec))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	eventRepo := mongodb.NewEventRepository(deps.DB)
	bookingRepo := mongodb.NewBookingRepository(deps.DB)
	favoriteRepo := mongodb.NewFavoriteRepository(deps.DB)
	notificationRepo := mongodb.NewNotificationRepository(deps.DB)

	authService := service.NewAuthService(userRepo, deps.Hasher, deps.Codec, deps.Log)
	dashboardService := service.NewDashboardService(userRepo, eventRepo, bookingRepo, favoriteRepo, notificationRepo, deps.Log)
	eventService := service.NewEventService(eventRepo, bookingRepo, favoriteRepo, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	eventHandler := handler.NewEventHandler(eventService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(deps.LoginLimiter))
	auth.POST("/refresh", authHandler.Refresh)

	// --- Dashboard routes (identity enforced in the handlers) ---
	dashboard := e.Group("/api/dashboard")
	dashboard.GET("", dashboardHandler.Summary)
	dashboard.GET("/my-tickets", dashboardHandler.MyTickets)
	dashboard.POST("/favorite/:eventId", dashboardHandler.ToggleFavorite)
	dashboard.GET("/notifications", dashboardHandler.Notifications)

	// --- Event and booking routes ---
	e.POST("/api/events", eventHandler.Create, middleware.RequireRole(string(domain.RoleAdmin)))
	e.GET("/api/events/:id", eventHandler.Get)
	e.POST("/api/bookings", eventHandler.Book)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
