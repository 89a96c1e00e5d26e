package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/api"
	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/extractor"
	"github.com/jonesrussell/storescope/internal/fetcher"
	"github.com/jonesrussell/storescope/internal/logger"
	"github.com/jonesrussell/storescope/internal/metrics"
)

// fakeInsights implements api.InsightsService with canned results.
type fakeInsights struct {
	profile   *domain.BrandProfile
	unified   *domain.UnifiedReport
	sentiment *domain.SentimentReport
	marketing *domain.MarketingReport
	pricing   *domain.PricingReport
	err       error
}

func (f *fakeInsights) Profile(context.Context, string) (*domain.BrandProfile, error) {
	return f.profile, f.err
}

func (f *fakeInsights) UnifiedReport(context.Context, string) (*domain.UnifiedReport, error) {
	return f.unified, f.err
}

func (f *fakeInsights) Sentiment(context.Context, string) (*domain.SentimentReport, error) {
	return f.sentiment, f.err
}

func (f *fakeInsights) Marketing(context.Context, string) (*domain.MarketingReport, error) {
	return f.marketing, f.err
}

func (f *fakeInsights) Pricing(context.Context, string) (*domain.PricingReport, error) {
	return f.pricing, f.err
}

func (f *fakeInsights) CacheLen() int { return 0 }

func performRequest(svc api.InsightsService, method, target string) *httptest.ResponseRecorder {
	router := api.SetupRouter(logger.NewNoOp(), svc, metrics.New())
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func healthySvc() *fakeInsights {
	return &fakeInsights{
		profile: &domain.BrandProfile{WebsiteURL: "https://shop.example.com", BrandName: "Acme"},
		unified: &domain.UnifiedReport{ID: "r1", BrandName: "Acme", HealthScore: 7.5},
		sentiment: &domain.SentimentReport{
			ID: "s1", Polarity: 0.4, PositivePct: 72, NegativePct: 14, NeutralPct: 14,
		},
		marketing: &domain.MarketingReport{ID: "m1", BrandPersonality: "refined"},
		pricing:   &domain.PricingReport{ID: "p1", Tier: domain.TierCompetitive},
	}
}

func TestFetchInsights_Success(t *testing.T) {
	w := performRequest(healthySvc(), http.MethodGet,
		"/api/fetch-insights?website_url=https%3A%2F%2Fshop.example.com")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, field := range []string{"website_url", "product_catalog", "policies", "warnings"} {
		if _, ok := resp[field]; !ok {
			t.Errorf("response missing profile field %q", field)
		}
	}
	if _, ok := resp["business_health_score"]; ok {
		t.Error("profile response carries report fields")
	}
}

func TestAnalysisEndpoints_MissingURL(t *testing.T) {
	paths := []string{
		"/api/fetch-insights",
		"/api/sentiment-analysis",
		"/api/marketing-insights",
		"/api/pricing-intelligence",
		"/api/ai-analysis",
	}
	for _, path := range paths {
		for _, query := range []string{"", "?website_url=", "?website_url=%20%20"} {
			w := performRequest(healthySvc(), http.MethodGet, path+query)
			if w.Code != http.StatusBadRequest {
				t.Errorf("GET %s%s: status = %d, want 400", path, query, w.Code)
			}
		}
	}
}

func TestPipelineErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid url", domain.ErrInvalidURL, http.StatusBadRequest},
		{"unsupported content", extractor.ErrUnsupportedContent, http.StatusNotFound},
		{"empty corpus", analyzer.ErrEmptyCorpus, http.StatusUnprocessableEntity},
		{"insufficient data", analyzer.ErrInsufficientData, http.StatusUnprocessableEntity},
		{"fetch timeout", fetcher.ErrTimeout, http.StatusBadGateway},
		{"connection failure", fetcher.ErrConnection, http.StatusBadGateway},
		{"upstream 500", &fetcher.HTTPError{StatusCode: 500}, http.StatusBadGateway},
		{"cancelled", context.Canceled, http.StatusRequestTimeout},
		{"deadline exceeded", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeInsights{err: tt.err}
			w := performRequest(svc, http.MethodGet,
				"/api/sentiment-analysis?website_url=https%3A%2F%2Fshop.example.com")
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON error body: %v", err)
			}
			if resp["error"] == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestWrappedErrorsStillMapped(t *testing.T) {
	svc := &fakeInsights{err: errors.Join(errors.New("context"), analyzer.ErrInsufficientData)}
	w := performRequest(svc, http.MethodGet,
		"/api/pricing-intelligence?website_url=https%3A%2F%2Fshop.example.com")
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 for wrapped ErrInsufficientData", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	w := performRequest(healthySvc(), http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v, want ok", resp["status"])
	}
	if _, ok := resp["cache_hits"]; !ok {
		t.Error("health response missing cache_hits")
	}
}

func TestServiceInfoEndpoint(t *testing.T) {
	w := performRequest(healthySvc(), http.MethodGet, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fetch-insights") {
		t.Error("service info missing endpoint listing")
	}
}

func TestCORSPreflightHandled(t *testing.T) {
	w := performRequest(healthySvc(), http.MethodOptions, "/api/fetch-insights")
	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}
