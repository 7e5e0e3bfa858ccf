package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paothinnapat/sales-tracker/internal/api/handlers"
	"github.com/paothinnapat/sales-tracker/internal/config"
	"github.com/paothinnapat/sales-tracker/internal/domain"
	"github.com/paothinnapat/sales-tracker/internal/metrics"
	"github.com/paothinnapat/sales-tracker/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, catalog *domain.Catalog, ledger *service.LedgerService, reg *metrics.Registry, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(reg.Handler()))

	api := router.Group("/api")
	{
		api.GET("/catalog", handlers.HandleGetCatalog(catalog))
		api.POST("/submit-sale", handlers.HandleSubmitSale(ledger, reg, logger))
	}

	// Everything else serves the prebuilt form bundle. Unknown client paths
	// fall back to index.html so the single-page app handles its own routing.
	router.NoRoute(spaFallback(cfg.StaticDir))

	return router
}

// spaFallback serves files from staticDir for non-API GETs, with index.html
// as the catch-all
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		file := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(staticDir, "index.html"))
	}
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
