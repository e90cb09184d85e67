package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/adinkra-labs/claims-api/api/swagger"
	"github.com/adinkra-labs/claims-api/internal/handler"
	"github.com/adinkra-labs/claims-api/internal/middleware"
	"github.com/adinkra-labs/claims-api/internal/models"
	"github.com/adinkra-labs/claims-api/internal/repository"
	"github.com/adinkra-labs/claims-api/internal/service"
	"github.com/adinkra-labs/claims-api/pkg/cache"
	"github.com/adinkra-labs/claims-api/pkg/config"
	"github.com/adinkra-labs/claims-api/pkg/database"
	"github.com/adinkra-labs/claims-api/pkg/logger"
	corsmiddleware "github.com/adinkra-labs/claims-api/pkg/middleware/cors"
	reqidmiddleware "github.com/adinkra-labs/claims-api/pkg/middleware/requestid"
)

// @title Lecturer Claims API
// @version 1.0.0
// @description Claim submission and processing service for lecturer claims
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Claims.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Claims.CacheTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	centerRepo := repository.NewCenterRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "claims-api",
	})
	claimSvc := service.NewClaimService(claimRepo, userRepo, cacheSvc, validate, logr)
	exportSvc := service.NewClaimExportService(claimRepo, centerRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	claimHandler := handler.NewClaimHandler(claimSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	claims := api.Group("/claims", middleware.JWT(authSvc))
	{
		claims.POST("", middleware.RequireRoles(models.RoleLecturer, models.RoleCoordinator), claimHandler.Submit)
		claims.GET("", claimHandler.List)
		if cfg.Claims.ExportEnabled {
			claims.GET("/export",
				middleware.RequireRoles(models.RoleCoordinator, models.RoleRegistry),
				middleware.Audit(userRepo, models.AuditActionClaimExport, "claim"),
				claimHandler.Export)
		}
		claims.GET("/:id", claimHandler.Get)
		claims.POST("/:id/decision", middleware.RequireRoles(models.RoleCoordinator, models.RoleRegistry), claimHandler.Decide)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
