package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BalesJ1029/hodlalpha/internal/api"
	"github.com/BalesJ1029/hodlalpha/internal/collector"
	"github.com/BalesJ1029/hodlalpha/internal/config"
	"github.com/BalesJ1029/hodlalpha/internal/database"
	"github.com/BalesJ1029/hodlalpha/internal/health"
	"github.com/BalesJ1029/hodlalpha/pkg/utils"
)

func main() {
	// Initialize logger
	logger := utils.NewLogger("hodlalpha")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	logger.WithFields(logrus.Fields{
		"listen_port":      cfg.ListenPort,
		"metrics_port":     cfg.MetricsPort,
		"reference_asset":  cfg.ReferenceAsset,
		"refresh_interval": cfg.RefreshInterval,
	}).Info("Configuration loaded")

	// Initialize database connection
	db, err := database.NewConnection(cfg.Database.DbUri, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database schema")
	}

	// Initialize repositories and services
	alertRepo := database.NewAlertRepository(db, logger)
	priceRepo := database.NewPriceRepository(db, logger)

	if cfg.SeedDemoData {
		if err := alertRepo.SeedDemoData(context.Background()); err != nil {
			logger.WithError(err).Error("Failed to seed demo data")
		}
	}

	fetcher := collector.NewFetcher(cfg.TickerURL, logger)
	scheduler := collector.NewScheduler(fetcher, priceRepo, cfg.ReferenceAsset, cfg.RefreshInterval, logger)

	// Initialize health checker
	healthChecker := health.NewChecker(db, logger)
	healthServer := healthChecker.StartServer(cfg.MetricsPort)

	// Start the API server
	apiServer := api.NewServer(alertRepo, priceRepo, cfg.APIToken, cfg.ReferenceAsset, logger).StartServer(cfg.ListenPort)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the refresh scheduler
	if err := scheduler.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to start refresh scheduler")
	}

	logger.Info("Alert service started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down alert service...")

	// Stop scheduler
	scheduler.Stop()

	// Shutdown HTTP servers
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shutdown API server gracefully")
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shutdown health server gracefully")
	}

	logger.Info("Alert service stopped")
}
