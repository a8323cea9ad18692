package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gyanbhambhani/rltr/internal/handler"
	mid "github.com/gyanbhambhani/rltr/internal/middleware"
	"github.com/gyanbhambhani/rltr/internal/store"
	"github.com/gyanbhambhani/rltr/pkg/config"
	"github.com/gyanbhambhani/rltr/pkg/database"
	"github.com/gyanbhambhani/rltr/pkg/jwtutil"
	"github.com/gyanbhambhani/rltr/pkg/logger"
	"github.com/gyanbhambhani/rltr/prometheus"
)

func main() {
	// Load configuration; missing SECRET_KEY or POSTGRES_URL is fatal
	appConfig, err := config.Load("rltr-api")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting rltr-api", appConfig.LogFields()...)

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(db, store.AllModels()...); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connection established")

	// Construct the store, token util and handlers
	st := store.New(db)
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:        appConfig.JWT.SigningKey,
		ExpirationMinutes: appConfig.JWT.ExpirationMinutes,
	})

	healthHandler := handler.NewHealthHandler(db)
	authHandler := handler.NewAuthHandler(st, jwtUtil)
	propertyHandler := handler.NewPropertyHandler(st)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomw.Recover())
	e.Use(mid.RequestID)
	e.Use(logger.Middleware())
	e.Use(mid.Metrics)

	corsOrigins := appConfig.CORSOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowCredentials: true,
	}))

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group(appConfig.Server.APIPrefix)

	// Health probes
	api.GET("/health/live", healthHandler.Live)
	api.GET("/health/ready", healthHandler.Ready)

	// Auth routes
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, mid.Auth(jwtUtil))

	// Property routes; scope checks run before any persistence access
	props := api.Group("/properties", mid.Auth(jwtUtil))
	props.POST("", propertyHandler.Create, mid.RequireScopes(handler.ScopeWriteProperty))
	props.GET("", propertyHandler.List, mid.RequireScopes(handler.ScopeReadProperty))
	props.GET("/:id", propertyHandler.Get, mid.RequireScopes(handler.ScopeReadProperty))
	props.PATCH("/:id", propertyHandler.Update, mid.RequireScopes(handler.ScopeWriteProperty))

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
