package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/webtodo/todo-system/docs"
	"github.com/webtodo/todo-system/internal/api/handler"
	"github.com/webtodo/todo-system/internal/api/middleware"
	"github.com/webtodo/todo-system/internal/core/service"
	mongodb "github.com/webtodo/todo-system/internal/infrastructure/db/mongo"
	redisdb "github.com/webtodo/todo-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)

	hasher := service.NewPasswordService(log)
	tokens := service.NewTokenService(jwtSecret, tokenTTL)
	principals := redisdb.NewPrincipalCache(rdb, service.NewPrincipalService(userRepo), log)

	userService := service.NewUserService(userRepo, hasher, tokens, log)
	todoService := service.NewTodoService(todoRepo, log)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService, principals)
	todoHandler := handler.NewTodoHandler(todoService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CorrelationID())
	e.Use(echoprometheus.NewMiddleware("todo"))
	e.Use(middleware.Auth(tokens, principals))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/profile", authHandler.Profile)

	// --- Account routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List)
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Replace)
	e.PATCH("/users/:id/admin", userHandler.SetAdmin)
	e.DELETE("/users/:id", userHandler.Delete)

	// --- Todo routes ---
	e.POST("/todos", todoHandler.Create)
	e.GET("/todos", todoHandler.List)
	e.GET("/todos/:id", todoHandler.Get)
	e.PATCH("/todos/:id", todoHandler.Update)
	e.DELETE("/todos/:id", todoHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}
