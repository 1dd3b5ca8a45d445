// File: /main.go
package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"fleetexpense-api/config"
	"fleetexpense-api/database"
	"fleetexpense-api/jobs"
	"fleetexpense-api/middleware"
	"fleetexpense-api/repositories"
	"fleetexpense-api/routes"
	"fleetexpense-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment")
	}

	// Load configuration
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL, gormLogLevel(cfg.LogLevel))
	if err != nil {
		slog.Error("Failed to connect to database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		slog.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	if cfg.Seed {
		if err := database.SeedData(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			slog.Warn("Failed to seed database", "error", err)
		}
	}

	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	emailService := services.NewEmailService(cfg)
	routes.SetupRoutes(router, db, cfg, emailService)

	taxReminderJob := jobs.NewTaxReminderJob(
		repositories.NewExpenseRepository(db),
		repositories.NewGroupRepository(db),
		emailService,
		cfg.TaxReminderInterval,
		time.Duration(cfg.TaxReminderWindowDays)*24*time.Hour,
	)
	taxReminderJob.Start()
	defer taxReminderJob.Stop()

	slog.Info("Starting Fleet Expense API server", "port", cfg.Port, "db_driver", cfg.DatabaseDriver)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
