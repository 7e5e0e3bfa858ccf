package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/api"
	"github.com/paothinnapat/sales-tracker/internal/config"
	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/metrics"
	"github.com/paothinnapat/sales-tracker/internal/service"
	"github.com/paothinnapat/sales-tracker/internal/sheets"
)

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting sales tracker server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Load the product catalog once; it is shared read-only afterwards
	catalog, err := domain.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded", zap.Int("products", len(catalog.Products)))

	// Each recorded sale opens its own handle to the ledger document
	openSheet := func() service.LedgerSheet {
		return sheets.NewClient(cfg.Sheets, logger)
	}
	ledger := service.NewLedgerService(openSheet, logger)
	reg := metrics.NewRegistry()

	// Initialize router
	router := api.NewRouter(cfg, catalog, ledger, reg, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
