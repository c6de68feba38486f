package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/ferraith/portfolio/internal/config"
	"github.com/ferraith/portfolio/internal/database"
	"github.com/ferraith/portfolio/internal/handlers"
	"github.com/ferraith/portfolio/internal/logger"
	"github.com/ferraith/portfolio/internal/middleware"
	"github.com/ferraith/portfolio/internal/services"
	"github.com/ferraith/portfolio/internal/validator"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	portfolioService := services.NewPortfolioService(db)
	assetService := services.NewAssetService(db)
	sharePriceService := services.NewSharePriceService(db)
	investmentService := services.NewInvestmentService(db)
	transactionService := services.NewTransactionService(db)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	assetHandler := handlers.NewAssetHandler(assetService)
	sharePriceHandler := handlers.NewSharePriceHandler(sharePriceService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Portfolio routes
	portfolios := v1.Group("/portfolios")
	portfolios.POST("", portfolioHandler.CreatePortfolio)
	portfolios.GET("", portfolioHandler.ListPortfolios)
	portfolios.GET("/:id", portfolioHandler.GetPortfolio)
	portfolios.PUT("/:id", portfolioHandler.RenamePortfolio)
	portfolios.DELETE("/:id", portfolioHandler.DeletePortfolio)
	portfolios.GET("/:id/investments", investmentHandler.ListPortfolioInvestments)

	// Asset routes
	assets := v1.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.ListAssets)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.PUT("/:id", assetHandler.UpdateAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.POST("/:id/prices", sharePriceHandler.RecordPrice)
	assets.GET("/:id/prices", sharePriceHandler.ListAssetPrices)
	assets.GET("/:id/prices/latest", sharePriceHandler.LatestPrice)

	// Share price routes
	prices := v1.Group("/prices")
	prices.GET("/:id", sharePriceHandler.GetSharePrice)
	prices.DELETE("/:id", sharePriceHandler.DeleteSharePrice)

	// Investment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.POST("/:id/transactions", transactionHandler.RecordTransaction)
	investments.GET("/:id/transactions", transactionHandler.ListInvestmentTransactions)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransaction)

	log.Infof("Starting portfolio backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
