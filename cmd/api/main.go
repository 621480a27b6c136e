package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"outlay/internal/config"
	"outlay/internal/database"
	"outlay/internal/handlers"
	"outlay/internal/logger"
	"outlay/internal/middleware"
	"outlay/internal/services"
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

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth: GET logs in (credentials travel in the body), POST registers.
	router.GET("/authenticate", authHandler.Login)
	router.POST("/authenticate", authHandler.Register)

	// Categories
	router.GET("/categories", categoryHandler.ListCategories)

	// Expenses
	router.GET("/expenses/:user_id", expenseHandler.ListByUser)
	router.POST("/expenses/:user_id", expenseHandler.Create)
	router.GET("/expense/:expense_id", expenseHandler.GetByID)
	router.PUT("/expense/:expense_id", expenseHandler.Update)
	router.DELETE("/expense/:expense_id", expenseHandler.Delete)

	log.Infof("Starting Outlay API server on port %s", cfg.APIPort)
	return router.Run(":" + cfg.APIPort)
}
