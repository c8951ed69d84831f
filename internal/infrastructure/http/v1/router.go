// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"todoroki/internal/domain/doit"
	"todoroki/internal/domain/label"
	"todoroki/internal/domain/todo"
	"todoroki/internal/domain/user"
	"todoroki/internal/infrastructure/http/v1/handlers"
	"todoroki/internal/infrastructure/http/v1/middleware"
	"todoroki/internal/infrastructure/storage/postgres"
	"todoroki/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	// Authenticator builds the auth middlewares.
	Authenticator *middleware.Authenticator

	Todos  *todo.Service
	Doits  *doit.Service
	Labels *label.Service
	Users  *user.Service
}

// NewRouter creates and configures the Gin router.
//
// Reads use optional auth: an anonymous caller still gets the public,
// redacted view. Mutations and the user endpoints require a token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	todoHandler := handlers.NewTodoHandler(cfg.Todos, cfg.Labels)
	doitHandler := handlers.NewDoitHandler(cfg.Doits, cfg.Labels)
	labelHandler := handlers.NewLabelHandler(cfg.Labels)
	userHandler := handlers.NewUserHandler(cfg.Users)

	optional := cfg.Authenticator.OptionalAuth()
	required := cfg.Authenticator.Auth()

	api := router.Group("/api/v1")
	{
		api.GET("/todos", optional, todoHandler.List)
		api.GET("/todos/:id", optional, todoHandler.Get)
		api.POST("/todos", required, todoHandler.Create)
		api.PATCH("/todos/:id", required, todoHandler.Update)
		api.DELETE("/todos/:id", required, todoHandler.Delete)

		api.GET("/doits", optional, doitHandler.List)
		api.GET("/doits/:id", optional, doitHandler.Get)
		api.POST("/doits", required, doitHandler.Create)
		api.PATCH("/doits/:id", required, doitHandler.Update)
		api.DELETE("/doits/:id", required, doitHandler.Delete)

		api.GET("/labels", optional, labelHandler.List)
		api.GET("/labels/:id", optional, labelHandler.Get)
		api.POST("/labels", required, labelHandler.Create)
		api.DELETE("/labels/:id", required, labelHandler.Delete)

		api.POST("/users", required, userHandler.Create)
		api.GET("/users/me", required, userHandler.Me)
	}

	return router
}
