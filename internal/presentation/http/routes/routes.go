package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trexivo/tinova-pos/internal/config"
	"github.com/trexivo/tinova-pos/internal/presentation/http/dto/response"
	"github.com/trexivo/tinova-pos/internal/presentation/http/handler"
	"github.com/trexivo/tinova-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Insight   *handler.InsightHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		response.InternalServerError(c, "Internal server error")
	}))
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Resource not found")
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// A zero or negative window in the environment falls back to the
		// defaults rather than dividing into an unlimited rate.
		limiterCfg := middleware.DefaultRateLimiterConfig()
		if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Duration > 0 {
			limiterCfg = middleware.RateLimiterConfig{
				RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
				BurstSize:         cfg.RateLimit.Requests,
				CleanupInterval:   5 * time.Minute,
				EntryTTL:          10 * time.Minute,
			}
		}
		rateLimiter := middleware.NewClientRateLimiter(limiterCfg)
		v1.Use(rateLimiter.Middleware())

		registerOrderRoutes(v1, h)

		v1.GET("/dashboard", h.Dashboard.GetStats)

		v1.GET("/insights", h.Insight.Get)
		v1.POST("/insights/generate", h.Insight.Generate)
	}

	return router
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/advance", h.Order.Advance)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.POST("/:id/settle", h.Order.Settle)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.POST("/:id/receipt/print", h.Order.PrintReceipt)
	}
}
