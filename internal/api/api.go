// Package api implements the HTTP API for the storefront intelligence service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/logger"
	"github.com/jonesrussell/storescope/internal/metrics"
)

// InsightsService defines the analysis operations the API exposes.
type InsightsService interface {
	// Profile returns the extracted brand profile for a storefront URL.
	Profile(ctx context.Context, rawURL string) (*domain.BrandProfile, error)

	// UnifiedReport composes every analysis module into one report.
	UnifiedReport(ctx context.Context, rawURL string) (*domain.UnifiedReport, error)

	// Sentiment runs sentiment analysis alone.
	Sentiment(ctx context.Context, rawURL string) (*domain.SentimentReport, error)

	// Marketing runs marketing analysis alone.
	Marketing(ctx context.Context, rawURL string) (*domain.MarketingReport, error)

	// Pricing runs pricing analysis alone.
	Pricing(ctx context.Context, rawURL string) (*domain.PricingReport, error)

	// CacheLen reports the number of cached profiles.
	CacheLen() int
}

// SetupRouter creates and configures the Gin router with all routes
func SetupRouter(log logger.Interface, svc InsightsService, m *metrics.Metrics) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	h := newInsightsHandler(svc, log)

	router.GET("/", serviceInfo)
	router.GET("/health", healthHandler(m, svc))

	apiGroup := router.Group("/api")
	apiGroup.GET("/fetch-insights", h.fetchInsights)
	apiGroup.GET("/sentiment-analysis", h.sentimentAnalysis)
	apiGroup.GET("/marketing-insights", h.marketingInsights)
	apiGroup.GET("/pricing-intelligence", h.pricingIntelligence)
	apiGroup.GET("/ai-analysis", h.aiAnalysis)

	return router
}

func serviceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "storescope",
		"status":  "running",
		"endpoints": []string{
			"/api/fetch-insights",
			"/api/sentiment-analysis",
			"/api/marketing-insights",
			"/api/pricing-intelligence",
			"/api/ai-analysis",
			"/health",
		},
	})
}

func healthHandler(m *metrics.Metrics, svc InsightsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := m.GetSnapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"uptime_seconds":  snap.UptimeSeconds,
			"fetch_count":     snap.FetchCount,
			"fetch_errors":    snap.FetchErrors,
			"cache_hits":      snap.CacheHits,
			"cache_misses":    snap.CacheMisses,
			"cached_profiles": svc.CacheLen(),
			"analysis_count":  snap.AnalysisCount,
		})
	}
}

// loggingMiddleware creates a middleware that logs HTTP requests
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware adds CORS headers to allow frontend access
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
