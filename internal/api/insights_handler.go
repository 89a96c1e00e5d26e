package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/storescope/internal/logger"
)

// analyzeRequest carries the query parameters every analysis endpoint
// accepts.
type analyzeRequest struct {
	WebsiteURL string `form:"website_url" binding:"required"`
}

// insightsHandler serves the analysis endpoints.
type insightsHandler struct {
	svc InsightsService
	log logger.Interface
}

func newInsightsHandler(svc InsightsService, log logger.Interface) *insightsHandler {
	return &insightsHandler{svc: svc, log: log.WithComponent("api")}
}

// bindURL parses and validates the website_url query parameter,
// responding with 400 itself when it is missing or blank.
func (h *insightsHandler) bindURL(c *gin.Context) (string, bool) {
	var req analyzeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, "website_url is required")
		return "", false
	}
	url := strings.TrimSpace(req.WebsiteURL)
	if url == "" {
		respondBadRequest(c, "website_url is required")
		return "", false
	}
	return url, true
}

// fetchInsights returns the extracted brand profile without running any
// analysis module.
func (h *insightsHandler) fetchInsights(c *gin.Context) {
	url, ok := h.bindURL(c)
	if !ok {
		return
	}

	profile, err := h.svc.Profile(c.Request.Context(), url)
	if err != nil {
		h.log.Warn("fetch-insights failed", "url", url, "error", err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *insightsHandler) sentimentAnalysis(c *gin.Context) {
	url, ok := h.bindURL(c)
	if !ok {
		return
	}

	report, err := h.svc.Sentiment(c.Request.Context(), url)
	if err != nil {
		h.log.Warn("sentiment analysis failed", "url", url, "error", err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *insightsHandler) marketingInsights(c *gin.Context) {
	url, ok := h.bindURL(c)
	if !ok {
		return
	}

	report, err := h.svc.Marketing(c.Request.Context(), url)
	if err != nil {
		h.log.Warn("marketing analysis failed", "url", url, "error", err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *insightsHandler) pricingIntelligence(c *gin.Context) {
	url, ok := h.bindURL(c)
	if !ok {
		return
	}

	report, err := h.svc.Pricing(c.Request.Context(), url)
	if err != nil {
		h.log.Warn("pricing analysis failed", "url", url, "error", err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// aiAnalysis returns the unified report alone, without the raw profile.
func (h *insightsHandler) aiAnalysis(c *gin.Context) {
	url, ok := h.bindURL(c)
	if !ok {
		return
	}

	report, err := h.svc.UnifiedReport(c.Request.Context(), url)
	if err != nil {
		h.log.Warn("ai analysis failed", "url", url, "error", err)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
