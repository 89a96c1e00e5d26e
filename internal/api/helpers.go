package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/extractor"
	"github.com/jonesrussell/storescope/internal/fetcher"
)

// respondError sends a JSON error response.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondBadRequest sends a 400 with message.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

// respondPipelineError maps pipeline failures onto HTTP statuses:
// invalid input is the caller's fault (400), non-storefront content is
// absent content (404), analyzable-but-insufficient data is
// unprocessable (422), upstream network failure is a bad gateway (502),
// and anything else is internal (500).
func respondPipelineError(c *gin.Context, err error) {
	var httpErr *fetcher.HTTPError

	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		respondBadRequest(c, "invalid website_url: "+err.Error())
	case errors.Is(err, extractor.ErrUnsupportedContent):
		respondError(c, http.StatusNotFound, "url does not serve storefront html")
	case errors.Is(err, analyzer.ErrEmptyCorpus),
		errors.Is(err, analyzer.ErrInsufficientData):
		respondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, fetcher.ErrTimeout),
		errors.Is(err, fetcher.ErrConnection),
		errors.As(err, &httpErr):
		respondError(c, http.StatusBadGateway, "failed to fetch storefront: "+err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away or the request deadline passed.
		respondError(c, http.StatusRequestTimeout, "request cancelled")
	default:
		respondError(c, http.StatusInternalServerError, "analysis failed")
	}
}
