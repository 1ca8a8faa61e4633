package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workshop-service/internal/app"
	"workshop-service/internal/infrastructure/config"
	"workshop-service/internal/infrastructure/router"
	"workshop-service/internal/interface/api"
	"workshop-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLoggerWithOptions(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer log.Sync()
	log.Info("Starting Workshop Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialise service", "error", err)
	}

	// Periodic refresh in a goroutine
	if cfg.SyncInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					log.Info("Periodic sync stopped")
					return
				case <-ticker.C:
					log.Info("Running periodic sync")
					if err := a.RefreshAll(ctx); err != nil {
						log.Error("Periodic sync failed", "error", err)
					}
				}
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewWorkshopHandler(a.Operations, a.Dispatcher, log)
	engine := router.NewRouter(router.Options{
		APIKey:      cfg.APIKey,
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    a.Registry,
	}, handler, a.JobCards.Ping, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	a.Close(shutdownCtx)

	log.Info("Workshop Service stopped")
}
