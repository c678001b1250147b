package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/application/service"
	"github.com/swiftpos/terminal-api/internal/config"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/infrastructure/upstream"
	"github.com/swiftpos/terminal-api/internal/presentation/http/handler"
	"github.com/swiftpos/terminal-api/internal/presentation/http/middleware"
	"github.com/swiftpos/terminal-api/internal/presentation/http/routes"
	"github.com/swiftpos/terminal-api/pkg/printer"
	"github.com/swiftpos/terminal-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize upstream clients
	catalogClient := upstream.NewCatalogClient(cfg.Upstream.CatalogBaseURL, cfg.Upstream.Timeout)
	billingClient := upstream.NewBillingClient(cfg.Upstream.BillingBaseURL, cfg.Upstream.Timeout)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, cfg.POS.TaxRatePct)

	// Initialize services
	sessionService := service.NewSessionService(
		catalogClient,
		billingClient,
		printerService,
		func() ([]entity.Category, []entity.CatalogItem) {
			return upstream.FallbackCategories(), upstream.FallbackProducts()
		},
		service.SessionConfig{
			TaxRatePct: cfg.POS.TaxRatePct,
			CompanyID:  cfg.POS.CompanyID,
			StoreID:    cfg.POS.StoreID,
			BillerName: cfg.POS.BillerName,
		},
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Catalog:  handler.NewCatalogHandler(sessionService),
		Cart:     handler.NewCartHandler(sessionService),
		Checkout: handler.NewCheckoutHandler(sessionService),
		Command:  handler.NewCommandHandler(sessionService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:       jwtManager,
		Cfg:              cfg,
		IdempotencyStore: middleware.NewIdempotencyStore(),
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
