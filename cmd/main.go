package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"superinv/internal/caching"
	"superinv/internal/handlers"
	"superinv/internal/jobs"
	"superinv/internal/middleware"
	"superinv/internal/repositories"
	"superinv/internal/services"
	"superinv/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Println("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Default low-stock threshold for items posted without one
	lowStockThreshold := 10
	if thresholdStr := os.Getenv("LOW_STOCK_DEFAULT_THRESHOLD"); thresholdStr != "" {
		if threshold, err := strconv.Atoi(thresholdStr); err == nil && threshold >= 0 {
			lowStockThreshold = threshold
		}
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	inventoryRepo := repositories.NewInventoryRepo(pool)
	transactionRepo := repositories.NewTransactionRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(userRepo, jwtSecret, services.DefaultTokenTTL)
	inventorySvc := services.NewInventoryService(inventoryRepo, cacheSvc)
	checkoutSvc := services.NewCheckoutService(pool, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc, lowStockThreshold)
	saleHandlers := handlers.NewSaleHandlers(checkoutSvc)
	transactionHandlers := handlers.NewTransactionHandlers(transactionRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Authentication routes (no token required)
	e.POST("/sessions", authHandlers.Signin)
	e.POST("/users", authHandlers.Signup)

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc, userRepo))

	protected.GET("/me", authHandlers.Me)

	protected.GET("/inventory", inventoryHandlers.ListInventory)
	protected.POST("/inventory", inventoryHandlers.UpsertInventory)
	protected.GET("/inventory/:id", inventoryHandlers.GetInventory)
	protected.PUT("/inventory/:id", inventoryHandlers.UpdateInventory)
	protected.DELETE("/inventory/:id", inventoryHandlers.DeleteInventory)

	protected.POST("/sales", saleHandlers.Checkout)
	protected.GET("/transactions", transactionHandlers.ListTransactions)

	// Hourly low-stock scan
	alertSvc := jobs.NewLowStockAlertService(inventoryRepo)
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(func() {
			if err := alertSvc.ScheduledLowStockCheck(context.Background()); err != nil {
				log.Printf("Low stock check failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatalf("Failed to schedule low stock check: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown failed: %v", err)
		}
	}()

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("superinv server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
