package main

import (
	"restaurant-admin-service/internal/handler"
	"restaurant-admin-service/internal/imagehost"
	mid "restaurant-admin-service/internal/middleware"
	"restaurant-admin-service/pkg/config"
	"restaurant-admin-service/pkg/database"
	"restaurant-admin-service/pkg/jwtutil"
	"restaurant-admin-service/pkg/logger"
	"restaurant-admin-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load .env file; a missing file is fine in environments that set
	// variables directly.
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting restaurant-admin-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Image host client for menu item photos
	if appConfig.ImageHost.APIKey == "" {
		log.Warn("IMAGE_HOST_API_KEY is not set; menu image uploads will fail")
	}
	handler.SetImageHostClient(imagehost.NewClient(&appConfig.ImageHost))

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Profile route - authenticated, no tenant required (it resolves one)
	profileAPI := e.Group("/api/profile", mid.AuthMiddleware)
	profileAPI.GET("", handler.GetProfile)

	// Staff API routes - every request is scoped to the resolved restaurant
	staffAPI := e.Group("/api/staff", mid.AuthMiddleware, mid.TenantMiddleware)
	staffAPI.GET("", handler.ListStaff)
	staffAPI.POST("", handler.CreateStaff)
	staffAPI.PUT("/:id", handler.UpdateStaff)
	staffAPI.DELETE("/:id", handler.DeleteStaff)

	// Leave API routes
	leaveAPI := e.Group("/api/leaves", mid.AuthMiddleware, mid.TenantMiddleware)
	leaveAPI.GET("", handler.ListLeaves)
	leaveAPI.POST("", handler.CreateLeave)
	leaveAPI.PATCH("/:id/status", handler.UpdateLeaveStatus)

	// Menu API routes
	menuAPI := e.Group("/api/menu", mid.AuthMiddleware, mid.TenantMiddleware)
	menuAPI.GET("/items", handler.ListMenuItems)
	menuAPI.POST("/items", handler.CreateMenuItem)
	menuAPI.POST("/images", handler.UploadMenuImage)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
