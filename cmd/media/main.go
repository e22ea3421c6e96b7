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

	"github.com/klyamkin/memehub/internal/config"
	"github.com/klyamkin/memehub/internal/logger"
	"github.com/klyamkin/memehub/internal/media"
	"github.com/klyamkin/memehub/internal/storage"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.New(logger.LoadConfig("memehub-media")))
	defer logger.Sync()

	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
	})
	if err != nil {
		logger.GetDefault().WithError(err).Fatal("Failed to initialize storage")
	}

	// Idempotent check-then-create, once at startup
	ctx := context.Background()
	if err := objectStorage.EnsureBucket(ctx); err != nil {
		logger.GetDefault().WithError(err).Fatal("Failed to ensure storage bucket")
	}

	router := media.SetupRouter(objectStorage, cfg.Server.Mode)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Media.Port),
		Handler: router,
	}

	go func() {
		logger.GetDefault().WithField("port", cfg.Media.Port).Info("Starting media server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetDefault().WithError(err).Fatal("Failed to start server")
		}
	}()

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
