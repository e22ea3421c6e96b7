package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klyamkin/memehub/internal/api"
	"github.com/klyamkin/memehub/internal/api/middleware"
	"github.com/klyamkin/memehub/internal/config"
	"github.com/klyamkin/memehub/internal/logger"
	"github.com/klyamkin/memehub/internal/media"
	"github.com/klyamkin/memehub/internal/repository"
	"github.com/klyamkin/memehub/internal/service"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.New(logger.LoadConfig("memehub-api")))
	defer logger.Sync()

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		logger.GetDefault().WithError(err).Fatal("Failed to initialize database")
	}

	memeRepo := repository.NewMemeRepository(db)

	mediaClient := media.NewClient(&media.ClientConfig{
		BaseURL: cfg.Media.BaseURL,
		Timeout: cfg.Media.Timeout,
	})

	memeService := service.NewMemeService(memeRepo, mediaClient)

	router := api.SetupRouter(memeService, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.GetDefault().WithField("port", cfg.Server.Port).Info("Starting meme API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetDefault().WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetDefault().Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetDefault().WithError(err).Fatal("Server forced to shutdown")
	}

	logger.GetDefault().Info("Server exited")
}
