// Package routes defines HTTP routes for the CRM auth service.
package routes

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sandeep-atiya/Ameyo-crm/docs"
	"github.com/sandeep-atiya/Ameyo-crm/internal/config"
	"github.com/sandeep-atiya/Ameyo-crm/internal/handlers"
	"github.com/sandeep-atiya/Ameyo-crm/internal/metrics"
	"github.com/sandeep-atiya/Ameyo-crm/internal/middleware"
	"github.com/sandeep-atiya/Ameyo-crm/internal/service"
)

// Deps collects everything route setup needs.
type Deps struct {
	Config      *config.Config
	JWTService  service.JWTService
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	Health      *handlers.HealthHandler
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Setup configures all HTTP routes for the application.
func Setup(router *gin.Engine, deps Deps) {
	cfg := deps.Config

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RequestLogger(deps.Logger, cfg.IsProduction()))
	router.Use(deps.Metrics.Middleware())
	router.Use(middleware.Sanitize())

	// Health check
	router.GET("/health", deps.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authLimiter := deps.RateLimiter.Limit("auth", cfg.AuthRateLimit)
	generalLimiter := deps.RateLimiter.Limit("general", cfg.GeneralRateLimit)

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimiter, deps.AuthHandler.Register)
		auth.POST("/login", authLimiter, deps.AuthHandler.Login)

		profile := auth.Group("")
		profile.Use(middleware.RequireAuth(deps.JWTService), generalLimiter)
		{
			profile.GET("/profile", deps.AuthHandler.GetProfile)
			profile.PUT("/profile", deps.AuthHandler.UpdateProfile)
		}
	}

	// User management routes
	users := router.Group("/api/users")
	users.Use(middleware.RequireAuth(deps.JWTService), generalLimiter)
	{
		users.GET("", deps.UserHandler.List)
		users.GET("/:userId", deps.UserHandler.GetByID)
		users.PUT("/:userId", deps.UserHandler.Update)
		users.DELETE("/:userId", deps.UserHandler.Delete)
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
