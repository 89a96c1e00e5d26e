// Package insights orchestrates the fetch-extract-analyze pipeline
// behind the API and CLI surfaces.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/cache"
	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/extractor"
	"github.com/jonesrussell/storescope/internal/fetcher"
	"github.com/jonesrussell/storescope/internal/logger"
	"github.com/jonesrussell/storescope/internal/metrics"
)

// ProfileStore persists profiles and reports. A nil store disables
// persistence and the stale-profile fallback; every other behavior is
// unchanged.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *domain.BrandProfile) error
	GetProfile(ctx context.Context, websiteURL string) (*domain.BrandProfile, error)
	SaveReport(ctx context.Context, websiteURL string, report *domain.UnifiedReport) error
	ListWebsiteURLs(ctx context.Context) ([]string, error)
}

// Service coordinates fetching, extraction, caching, analysis, and
// optional persistence for storefront intelligence requests.
type Service struct {
	cache   *cache.ProfileCache
	cfg     analyzer.Config
	store   ProfileStore
	log     logger.Interface
	metrics *metrics.Metrics
}

// NewService wires the pipeline together. The cache's load function
// performs the actual fetch and extraction, so concurrent requests for
// one URL share a single network round trip.
func NewService(
	cfg analyzer.Config,
	cacheTTL time.Duration,
	f *fetcher.Fetcher,
	ex *extractor.Extractor,
	store ProfileStore,
	log logger.Interface,
	m *metrics.Metrics,
) *Service {
	svc := &Service{
		cfg:     cfg,
		store:   store,
		log:     log.WithComponent("insights"),
		metrics: m,
	}

	load := func(ctx context.Context, url string) (*domain.BrandProfile, error) {
		body, err := f.Fetch(ctx, url)
		if err != nil {
			m.RecordFetch(false)
			return nil, err
		}
		m.RecordFetch(true)

		profile, err := ex.Extract(ctx, url, body)
		if err != nil {
			return nil, err
		}

		svc.persistProfile(ctx, profile)
		return profile, nil
	}
	svc.cache = cache.New(cacheTTL, load, log, m)

	return svc
}

// Profile returns the brand profile for a storefront URL, fetching and
// extracting it unless a fresh cached copy exists. When the live
// pipeline fails and a persisted snapshot of the storefront exists, the
// snapshot is served instead.
func (s *Service) Profile(ctx context.Context, rawURL string) (*domain.BrandProfile, error) {
	profile, err := s.cache.GetOrFetch(ctx, rawURL)
	if err == nil {
		return profile, nil
	}
	if s.store == nil || ctx.Err() != nil {
		return nil, err
	}

	key, normErr := domain.NormalizeURL(rawURL)
	if normErr != nil {
		return nil, err
	}
	stored, storeErr := s.store.GetProfile(ctx, key)
	if storeErr != nil {
		return nil, err
	}

	s.log.Warn("serving stored profile after pipeline failure", "url", key, "error", err)
	return stored, nil
}

// UnifiedReport fetches the profile and composes the full intelligence
// report across every analysis module.
func (s *Service) UnifiedReport(ctx context.Context, rawURL string) (*domain.UnifiedReport, error) {
	profile, err := s.Profile(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	report, err := analyzer.ComposeReport(s.cfg, profile)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysis()

	s.persistReport(ctx, profile.WebsiteURL, report)
	return report, nil
}

// Sentiment fetches the profile and runs sentiment analysis alone.
func (s *Service) Sentiment(ctx context.Context, rawURL string) (*domain.SentimentReport, error) {
	profile, err := s.Profile(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	report, err := analyzer.AnalyzeSentiment(s.cfg, profile)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysis()
	return report, nil
}

// Marketing fetches the profile and runs marketing analysis alone.
func (s *Service) Marketing(ctx context.Context, rawURL string) (*domain.MarketingReport, error) {
	profile, err := s.Profile(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	report := analyzer.AnalyzeMarketing(s.cfg, profile)
	s.metrics.RecordAnalysis()
	return report, nil
}

// Pricing fetches the profile and runs pricing analysis alone.
func (s *Service) Pricing(ctx context.Context, rawURL string) (*domain.PricingReport, error) {
	profile, err := s.Profile(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	report, err := analyzer.AnalyzePricing(s.cfg, profile)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalysis()
	return report, nil
}

// RefreshAll re-fetches every persisted storefront, bypassing the cache
// so stored profiles stay current. Used by the scheduler.
func (s *Service) RefreshAll(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("refresh requires a configured store")
	}

	urls, err := s.store.ListWebsiteURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list storefronts: %w", err)
	}

	s.log.Info("refreshing persisted storefronts", "count", len(urls))

	var failed int
	for _, url := range urls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.cache.Invalidate(url)
		// Straight to the cache loader: the stored-profile fallback
		// would mask a failed refresh as a success.
		if _, refreshErr := s.cache.GetOrFetch(ctx, url); refreshErr != nil {
			failed++
			s.log.Warn("storefront refresh failed", "url", url, "error", refreshErr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("refresh completed with %d of %d failures", failed, len(urls))
	}
	return nil
}

// ClearCache drops every cached profile.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CacheLen reports the number of cached profiles.
func (s *Service) CacheLen() int {
	return s.cache.Len()
}

// persistProfile is write-through with log-only failure: a broken
// database never fails a request that already has its data.
func (s *Service) persistProfile(ctx context.Context, profile *domain.BrandProfile) {
	if s.store == nil {
		return
	}
	if err := s.store.UpsertProfile(ctx, profile); err != nil {
		s.log.Warn("failed to persist profile", "url", profile.WebsiteURL, "error", err)
	}
}

func (s *Service) persistReport(ctx context.Context, websiteURL string, report *domain.UnifiedReport) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveReport(ctx, websiteURL, report); err != nil {
		s.log.Warn("failed to persist report", "url", websiteURL, "error", err)
	}
}
