// Package main is the entry point for the todoroki API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoroki/internal/domain/auth"
	"todoroki/internal/domain/doit"
	"todoroki/internal/domain/label"
	"todoroki/internal/domain/todo"
	"todoroki/internal/domain/user"
	"todoroki/internal/infrastructure/firebase"
	v1 "todoroki/internal/infrastructure/http/v1"
	"todoroki/internal/infrastructure/http/v1/middleware"
	"todoroki/internal/infrastructure/storage/postgres"
	"todoroki/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting todoroki server")

	// --- Database ---
	dsn := mustEnv(log, "DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Identity provider ---
	projectID := mustEnv(log, "FIREBASE_PROJECT_ID")
	defaultOwnerEmail := mustEnv(log, "DEFAULT_OWNER_EMAIL")

	keyProvider := firebase.NewKeyProvider(
		&http.Client{Timeout: 10 * time.Second},
		getEnv("JWKS_URL", firebase.DefaultJWKSURL),
	)
	verifier := auth.NewVerifier(keyProvider, projectID)

	// --- Repositories ---
	userRepo := postgres.NewUserRepo(txManager)
	todoRepo := postgres.NewTodoRepo(txManager)
	doitRepo := postgres.NewDoitRepo(txManager)
	labelRepo := postgres.NewLabelRepo(txManager)

	auditor, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		log.Fatalw("failed to create audit recorder", "error", err)
	}

	// --- Services ---
	resolver := auth.NewResolver(userRepo)
	userService := user.NewService(userRepo, auditor, defaultOwnerEmail)
	todoService := todo.NewService(todoRepo, auditor)
	doitService := doit.NewService(doitRepo, auditor)
	labelService := label.NewService(labelRepo, auditor)

	authenticator := middleware.NewAuthenticator(verifier, resolver, defaultOwnerEmail)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:          pool,
		Logger:        log,
		Authenticator: authenticator,
		Todos:         todoService,
		Doits:         doitService,
		Labels:        labelService,
		Users:         userService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "issuer", verifier.Issuer())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	postgres.LogPoolStats(ctx, pool.Pool)

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(log *logger.Logger, key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalw("required environment variable not set", "key", key)
	}
	return value
}
