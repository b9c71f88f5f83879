package main

import (
	"fmt"
	"net/http"
	"os"

	"budgetbook/internal/config"
	"budgetbook/internal/database"
	"budgetbook/internal/handlers"
	"budgetbook/internal/logger"
	"budgetbook/internal/middleware"
	"budgetbook/internal/services"
	"budgetbook/internal/validator"

	"github.com/gin-gonic/gin"
)

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

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	monthService := services.NewMonthService(db)
	itemService := services.NewItemService(db)
	budgetService := services.NewBudgetService(db, nil)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler()
	monthHandler := handlers.NewMonthHandler(monthService)
	itemHandler := handlers.NewItemHandler(itemService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Month routes
	months := protected.Group("/months")
	months.POST("", monthHandler.CreateMonth)
	months.GET("", monthHandler.GetMonths)
	months.GET("/:month_id/items", budgetHandler.GetMonthItems)
	months.POST("/:month_id/items", itemHandler.CreateItem)
	months.PUT("/:month_id/items/:item_id/value", budgetHandler.SetItemValue)
	months.DELETE("/:month_id/items/:item_id", budgetHandler.RemoveItemFromMonth)

	// Item catalogue routes
	items := protected.Group("/items")
	items.GET("", itemHandler.GetItems)
	items.PUT("/:item_id", itemHandler.UpdateItem)

	log.Infof("Starting budgetbook backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
