package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anushv/investments/config"
	"github.com/anushv/investments/internal/cache"
	"github.com/anushv/investments/internal/database"
	"github.com/anushv/investments/internal/handlers"
	"github.com/anushv/investments/internal/marketdata"
	"github.com/anushv/investments/internal/middleware"
	"github.com/anushv/investments/internal/repository"
	"github.com/anushv/investments/internal/services"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize market data client and quote cache
	mdClient := marketdata.NewClient(cfg.MarketAPIKey)
	quoteCache := cache.NewQuoteCache(cfg.QuoteTTL)

	// Initialize repositories
	tickerRepo := repository.NewTickerRepository(db.Pool)
	securityRepo := repository.NewSecurityRepository(db.Pool)
	cashRepo := repository.NewCashRepository(db.Pool)
	txnRepo := repository.NewTransactionRepository(db.Pool)
	snapshotRepo := repository.NewSnapshotRepository(db.Pool)

	// Initialize services
	txnSvc := services.NewTransactionService(tickerRepo, securityRepo, cashRepo, txnRepo)
	valuationSvc := services.NewValuationService(securityRepo, cashRepo, snapshotRepo, quoteCache, mdClient)
	securitiesSvc := services.NewSecuritiesService(securityRepo)

	// Initialize handlers
	txnHandler := handlers.NewTransactionHandler(txnSvc)
	portfolioHandler := handlers.NewPortfolioHandler(valuationSvc)
	securitiesHandler := handlers.NewSecuritiesHandler(securitiesSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	router.POST("/api/transactions", txnHandler.Create)
	router.GET("/api/securities", securitiesHandler.List)
	router.GET("/api/portfolio/report", portfolioHandler.Report)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
