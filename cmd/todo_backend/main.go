package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/todo_api/internal/adapters/filestore"
	"github.com/SscSPs/todo_api/internal/core/services"
	"github.com/SscSPs/todo_api/internal/handlers"
	"github.com/SscSPs/todo_api/internal/platform/config"
	"github.com/SscSPs/todo_api/internal/platform/logging"
	"github.com/SscSPs/todo_api/internal/platform/metrics"
	"github.com/SscSPs/todo_api/internal/utils"
	"github.com/gin-gonic/gin"
)

// @title Todo API
// @version 1.0
// @description Authenticated todo list backend with file-backed storage.

// @host localhost:3001
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := logging.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	repos, err := filestore.NewRepositoryProvider(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to open data directory", slog.String("data_dir", cfg.DataDir), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("File store ready", slog.String("data_dir", cfg.DataDir))

	serviceContainer := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handlers.NewRouter(cfg, logger, serviceContainer, metrics.NewRegistry(), posthogClient)
	if err != nil {
		logger.Error("Failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("addr", cfg.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	waitForShutdown(server, logger)
}

func waitForShutdown(server *http.Server, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("Shutdown started")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Shutdown complete")
}
