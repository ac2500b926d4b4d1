// Package main is the entry point for the CRM auth service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	_ "github.com/sandeep-atiya/Ameyo-crm/docs"
	"github.com/sandeep-atiya/Ameyo-crm/internal/config"
	"github.com/sandeep-atiya/Ameyo-crm/internal/handlers"
	"github.com/sandeep-atiya/Ameyo-crm/internal/metrics"
	"github.com/sandeep-atiya/Ameyo-crm/internal/middleware"
	"github.com/sandeep-atiya/Ameyo-crm/internal/repository"
	"github.com/sandeep-atiya/Ameyo-crm/internal/routes"
	"github.com/sandeep-atiya/Ameyo-crm/internal/service"
	"github.com/sandeep-atiya/Ameyo-crm/pkg/database"
	"github.com/sandeep-atiya/Ameyo-crm/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
)

// @title Ameyo CRM Auth Service API
// @version 1.0
// @description Authentication and user management service for the Ameyo CRM backend
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)

	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		logger.Error("failed to initialize token signing", "error", err)
		os.Exit(1)
	}
	authService := service.NewAuthService(userRepo, jwtService, logger)
	userService := service.NewUserService(userRepo, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	routes.Setup(router, routes.Deps{
		Config:      cfg,
		JWTService:  jwtService,
		AuthHandler: handlers.NewAuthHandler(authService, logger),
		UserHandler: handlers.NewUserHandler(userService, logger),
		Health:      handlers.NewHealthHandler(),
		RateLimiter: middleware.NewRateLimiter(redisClient, logger),
		Metrics:     metrics.New(prometheus.DefaultRegisterer),
		Logger:      logger,
	})

	logger.Info("starting auth service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}
