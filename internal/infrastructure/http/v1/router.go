// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bakestock/internal/domain/catalogs/product"
	"bakestock/internal/domain/dispatch"
	"bakestock/internal/domain/lots"
	"bakestock/internal/domain/reports"
	"bakestock/internal/infrastructure/http/v1/handlers"
	"bakestock/internal/infrastructure/http/v1/middleware"
	"bakestock/internal/infrastructure/storage/postgres"
	"bakestock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	ProductService  *product.Service
	LotService      *lots.Service
	DispatchService *dispatch.Service
	ReportsService  *reports.Service

	// CORSOrigins lists allowed origins; empty allows all (dev mode)
	CORSOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.CORSOrigins))

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	productHandler := handlers.NewProductHandler(base, cfg.ProductService)
	lotHandler := handlers.NewLotHandler(base, cfg.LotService, cfg.DispatchService)
	dispatchHandler := handlers.NewDispatchHandler(base, cfg.DispatchService)
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)

	v1 := router.Group("/api/v1")
	{
		catalog := v1.Group("/catalog")
		{
			products := catalog.Group("/products")
			{
				products.POST("", productHandler.Create)
				products.GET("", productHandler.List)
				products.GET("/:id", productHandler.GetByID)
				products.PUT("/:id", productHandler.Update)
				products.DELETE("/:id", productHandler.Deactivate)
			}
		}

		lotRoutes := v1.Group("/lots")
		{
			lotRoutes.POST("", lotHandler.Create)
			lotRoutes.GET("", lotHandler.List)
			lotRoutes.GET("/:id", lotHandler.GetByID)
			lotRoutes.GET("/:id/remaining", lotHandler.Remaining)
		}

		dispatches := v1.Group("/dispatches")
		{
			dispatches.POST("", dispatchHandler.Create)
			dispatches.GET("", dispatchHandler.List)
			// Static route before the :id wildcard
			dispatches.GET("/destinations", dispatchHandler.Destinations)
			dispatches.GET("/:id", dispatchHandler.GetByID)
			dispatches.PUT("/:id", dispatchHandler.Amend)
		}

		reportRoutes := v1.Group("/reports")
		{
			reportRoutes.GET("/summary", reportsHandler.Summary)
			reportRoutes.GET("/print", reportsHandler.Print)
		}
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Trace-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}
