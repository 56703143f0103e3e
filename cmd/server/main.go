package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintrovert/forgeops/internal/actions"
	"github.com/clintrovert/forgeops/internal/api/rest"
	"github.com/clintrovert/forgeops/internal/github"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer logger.Sync()

	// Get configuration from environment
	githubToken := getEnv("GITHUB_TOKEN", "")
	restPort := getEnv("REST_PORT", "8080")

	if githubToken == "" {
		logger.Fatal("GITHUB_TOKEN is required")
	}

	// Create GitHub client
	githubClient := github.NewClient(githubToken, logger)

	// Build the action catalog
	registry := actions.NewRegistry(logger)
	githubActions := actions.NewGitHubActions(githubClient, logger)
	if err := githubActions.Register(registry); err != nil {
		logger.Fatal("failed to register actions", zap.Error(err))
	}

	// Create REST API handler
	restHandler := rest.NewHandler(registry, logger)

	// Setup REST API
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		restHandler.RegisterRoutes(r)
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Start REST server
	restAddr := fmt.Sprintf(":%s", restPort)
	restServer := &http.Server{
		Addr:    restAddr,
		Handler: router,
	}

	go func() {
		logger.Info("starting REST API server",
			zap.String("address", restAddr),
			zap.Int("actions", len(registry.List())),
		)
		if err := restServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start REST server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	restServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
