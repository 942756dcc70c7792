package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"inventorypulse/internal/handler"
	mid "inventorypulse/internal/middleware"
	"inventorypulse/internal/model"
	"inventorypulse/internal/repository"
	"inventorypulse/internal/service"
	"inventorypulse/pkg/config"
	"inventorypulse/pkg/database"
	"inventorypulse/pkg/jwtutil"
	"inventorypulse/pkg/logger"
	"inventorypulse/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventorypulse",
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

	if err := database.SeedAdminUser(); err != nil {
		log.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Wire repositories, services and handlers
	db := database.GetDB()
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	batchRepo := repository.NewImportBatchRepository(db)

	productService := service.NewProductService(productRepo, batchRepo, log)
	inventoryService := service.NewInventoryService(productRepo, inventoryRepo, alertRepo, log)

	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	alertHandler := handler.NewAlertHandler(alertRepo)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/login", handler.Login)
	authAPI.POST("/register", handler.Register)
	authAPI.GET("/me", handler.Me, mid.AuthMiddleware)

	// Mutating catalog and ledger operations are restricted to privileged roles
	privileged := mid.RequireRoles(model.RoleAdmin, model.RoleManager)

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", productHandler.List)
	productAPI.GET("/search", productHandler.Search)
	productAPI.GET("/low-stock", productHandler.LowStock)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.POST("", productHandler.Create, privileged)
	productAPI.PUT("/:id", productHandler.Update, privileged)
	productAPI.DELETE("/:id", productHandler.Delete, privileged)
	productAPI.POST("/import", productHandler.Import, privileged)

	// Inventory transaction routes
	productAPI.GET("/:id/transactions", inventoryHandler.ListTransactions)
	productAPI.POST("/:id/transactions", inventoryHandler.CreateTransaction, privileged)

	// Alert routes
	alertAPI := e.Group("/api/alerts", mid.AuthMiddleware)
	alertAPI.GET("", alertHandler.List)
	alertAPI.PUT("/:id/seen", alertHandler.MarkSeen, privileged)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
