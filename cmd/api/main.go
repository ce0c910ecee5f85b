package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	"fintrack/internal/credential"
	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/metrics"
	"fintrack/internal/server"
	"fintrack/internal/validator"
)

// @title           Personal Finance Tracker API
// @version         1.0
// @description     Multi-tenant API for tracking transactions, budgets and savings goals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	httpMetrics, err := metrics.New(appConfig.Env)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	validator.Register()

	router := server.NewRouter(server.Deps{
		DB:             dbManager.DB(),
		Engine:         credential.NewEngine(appConfig.SecretKey, appConfig.TokenTTL()),
		Metrics:        httpMetrics,
		AllowedOrigins: appConfig.AllowedOrigins(),
	})

	log.Infof("Starting %s on port %s", appConfig.ProjectName, appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
