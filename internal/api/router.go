package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/jwtpizza/pizza-service/docs"
	"github.com/jwtpizza/pizza-service/internal/api/handler"
	"github.com/jwtpizza/pizza-service/internal/api/middleware"
	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/http/handlers"
	"github.com/jwtpizza/pizza-service/internal/pkg/config"
)

// Deps carries everything NewRouter wires into routes.
type Deps struct {
	Config *config.Config
	Log    zerolog.Logger

	Tokens     middleware.Authenticator
	Auth       ports.AuthService
	Users      ports.UserService
	Franchises ports.FranchiseService
	Orders     ports.OrderService

	// ReadinessChecks back /health/ready, keyed by dependency name.
	ReadinessChecks map[string]handlers.Check

	// Registerer and Gatherer enable HTTP metrics and /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// @title                       JWT Pizza Service API
// @description                 Pizza storefront API: accounts, franchises, menu and orders.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.Config.CORSAllowOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "pizza",
			Registerer: d.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	franchiseHandler := handler.NewFranchiseHandler(d.Franchises)
	orderHandler := handler.NewOrderHandler(d.Orders)
	serviceHandler := handler.NewServiceHandler(d.Config.Version, d.Config.Redacted(),
		authHandler, userHandler, franchiseHandler, orderHandler)

	e.GET("/", serviceHandler.Welcome)

	api := e.Group("/api", middleware.Identify(d.Tokens, d.Log))
	api.GET("/docs", serviceHandler.Docs)

	// --- Auth routes ---
	api.POST("/auth", authHandler.Register)
	api.PUT("/auth", authHandler.Login)
	api.DELETE("/auth", authHandler.Logout, middleware.RequireAuth)

	// --- User routes ---
	adminOnly := middleware.RequireRole(domain.RoleAdmin, "unauthorized")
	api.GET("/user/me", userHandler.Me, middleware.RequireAuth)
	api.GET("/user", userHandler.List, middleware.RequireAuth, adminOnly)
	api.PUT("/user/:userId", userHandler.Update, middleware.RequireAuth)
	api.DELETE("/user/:userId", userHandler.Delete, middleware.RequireAuth, adminOnly)

	// --- Franchise routes ---
	api.GET("/franchise", franchiseHandler.List)
	api.GET("/franchise/:userId", franchiseHandler.ListForUser, middleware.RequireAuth)
	api.POST("/franchise", franchiseHandler.Create,
		middleware.RequireRole(domain.RoleAdmin, "unable to create a franchise"))
	// Unguarded: the storefront deletes franchises without a token.
	api.DELETE("/franchise/:franchiseId", franchiseHandler.Delete)
	api.POST("/franchise/:franchiseId/store", franchiseHandler.CreateStore, middleware.RequireAuth)
	api.DELETE("/franchise/:franchiseId/store/:storeId", franchiseHandler.DeleteStore, middleware.RequireAuth)

	// --- Order routes ---
	api.GET("/order/menu", orderHandler.Menu)
	api.PUT("/order/menu", orderHandler.AddMenuItem, middleware.RequireAuth,
		middleware.RequireRole(domain.RoleAdmin, "unable to add menu item"))
	api.GET("/order", orderHandler.Orders, middleware.RequireAuth)
	api.POST("/order", orderHandler.Create, middleware.RequireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler(d.Config.Version)
	readinessHandler := handlers.NewReadinessHandler(d.ReadinessChecks)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	docs.SwaggerInfo.Version = d.Config.Version
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return domain.ErrUnknownEndpoint
	})

	return e
}
