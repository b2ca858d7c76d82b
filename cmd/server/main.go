package main

import (
	"context"
	"log"
	"net/http"

	_ "dashdeck/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dashdeck/internal/cache"
	"dashdeck/internal/config"
	"dashdeck/internal/db"
	"dashdeck/internal/handler"
	"dashdeck/internal/logger"
	"dashdeck/internal/model"
	"dashdeck/internal/password"
	"dashdeck/internal/repository"
	"dashdeck/internal/router"
	"dashdeck/internal/seed"
	"dashdeck/internal/service"
)

// @title DashDeck API
// @version 1.0
// @description Dashboard backend with email/password authentication, weather proxy, and PDF report generation.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	slogger := logger.New(cfg.LogLevel)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repository and hasher
	userRepo := repository.NewUserRepository(gormDB, cfg.QueryTimeout)
	hasher := password.NewHasher()

	// Upgrade legacy plaintext credentials before accepting traffic.
	// Row-level failures are logged and skipped inside the pass; only a
	// failure to scan at all is reported, and even that does not stop boot.
	migrator := service.NewMigrator(userRepo, hasher, slogger)
	if err := migrator.Run(context.Background()); err != nil {
		slogger.Error("credential migration pass could not scan users", "error", err)
	}

	if cfg.SeedDemoUsers {
		if _, err := seed.Run(context.Background(), userRepo, hasher, slogger, seed.DefaultAccounts()); err != nil {
			slogger.Error("seeding demo users failed", "error", err)
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, slogger)
	weatherService := service.NewWeatherService(cfg.WeatherAPIKey, cfg.WeatherTimeout, cacheClient, slogger)
	reportService := service.NewReportService()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	weatherHandler := handler.NewWeatherHandler(weatherService)
	reportHandler := handler.NewReportHandler(reportService)

	// Register routes
	router.Register(e, gormDB, authHandler, weatherHandler, reportHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
