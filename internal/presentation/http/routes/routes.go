package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swiftpos/terminal-api/internal/config"
	"github.com/swiftpos/terminal-api/internal/presentation/http/handler"
	"github.com/swiftpos/terminal-api/internal/presentation/http/middleware"
	"github.com/swiftpos/terminal-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Catalog  *handler.CatalogHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Command  *handler.CommandHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager       *utils.JWTManager
	Cfg              *config.Config
	IdempotencyStore *middleware.IdempotencyStore
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSessionRoutes(protected, h, deps)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sessions := protected.Group("/pos/sessions")
	{
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Close)
		sessions.GET("/:id/totals", h.Session.Totals)
		sessions.POST("/:id/new-sale", h.Session.NewSale)
		sessions.POST("/:id/save-sale", h.Session.SaveSale)

		// Catalog
		sessions.POST("/:id/catalog/refresh", h.Catalog.Refresh)
		sessions.GET("/:id/catalog/categories", h.Catalog.Categories)
		sessions.GET("/:id/catalog/products", h.Catalog.Products)
		sessions.PUT("/:id/catalog/category-filter", h.Catalog.SetCategoryFilter)
		sessions.PUT("/:id/catalog/query", h.Catalog.SetQuery)
		sessions.GET("/:id/catalog/search", h.Catalog.Search)

		// Cart
		sessions.POST("/:id/cart/items", h.Cart.AddItem)
		sessions.PATCH("/:id/cart/items/:productId", h.Cart.UpdateItem)
		sessions.DELETE("/:id/cart/items/:productId", h.Cart.RemoveItem)
		sessions.PUT("/:id/cart/selection", h.Cart.Select)

		// Payment and checkout
		sessions.POST("/:id/payment/open", h.Checkout.OpenPayment)
		sessions.POST("/:id/payment/close", h.Checkout.ClosePayment)
		sessions.PATCH("/:id/payment", h.Checkout.UpdatePayment)
		// Checkout uses idempotency middleware so a front-end retry of a
		// submitted sale cannot charge twice
		sessions.POST("/:id/checkout", middleware.Idempotency(deps.IdempotencyStore), h.Checkout.Checkout)

		// Keyboard commands
		sessions.POST("/:id/commands", h.Command.Dispatch)
		sessions.POST("/:id/search/close", h.Command.CloseSearch)
		sessions.POST("/:id/quantity-dialog/close", h.Command.CloseQuantityDialog)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
