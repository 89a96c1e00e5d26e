package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/storescope/internal/domain"
)

// Module weights for the composite health score and unified confidence.
// A module that failed contributes zero at its full weight, so a
// degraded report always scores below an equivalent complete one.
const (
	weightSentiment = 0.5
	weightMarketing = 0.3
	weightPricing   = 0.2
)

// ComposeReport runs every analyzer over the profile and merges the
// results into a unified report. Pricing's ErrInsufficientData and
// sentiment's ErrEmptyCorpus degrade the report instead of failing it;
// any other error aborts composition.
func ComposeReport(cfg Config, profile *domain.BrandProfile) (*domain.UnifiedReport, error) {
	sentiment, err := AnalyzeSentiment(cfg, profile)
	if err != nil && !errors.Is(err, ErrEmptyCorpus) {
		return nil, fmt.Errorf("compose report: %w", err)
	}

	marketing := AnalyzeMarketing(cfg, profile)

	pricing, pricingErr := AnalyzePricing(cfg, profile)
	if pricingErr != nil && !errors.Is(pricingErr, ErrInsufficientData) {
		return nil, fmt.Errorf("compose report: %w", pricingErr)
	}

	competitive := AnalyzeCompetitive(profile)

	return &domain.UnifiedReport{
		ID:              uuid.NewString(),
		BrandName:       profile.BrandName,
		HealthScore:     healthScore(profile, sentiment, pricing),
		Sentiment:       sentiment,
		Marketing:       marketing,
		Pricing:         pricing,
		PricingDegraded: pricing == nil,
		Competitive:     competitive,
		DataQuality:     profile.Completeness(),
		Recommendations: mergeRecommendations(sentiment, marketing, pricing),
		Confidence:      unifiedConfidence(sentiment, marketing, pricing),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// healthScore blends sentiment polarity, profile completeness, and
// pricing coherence into a [0,10] score.
func healthScore(profile *domain.BrandProfile, sentiment *domain.SentimentReport, pricing *domain.PricingReport) float64 {
	var sentimentPart float64
	if sentiment != nil {
		sentimentPart = (sentiment.Polarity + 1) / 2 * 10
	}

	completenessPart := profile.Completeness() * 10

	var pricingPart float64
	if pricing != nil {
		// Full marks for a tiered catalog, discounted when the
		// sample is too small to trust.
		pricingPart = 10 * pricing.Confidence
	}

	score := weightSentiment*sentimentPart +
		weightMarketing*completenessPart +
		weightPricing*pricingPart
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// mergeRecommendations interleaves module recommendations ordered by
// module weight, deduplicating exact repeats.
func mergeRecommendations(sentiment *domain.SentimentReport, marketing *domain.MarketingReport, pricing *domain.PricingReport) []string {
	var merged []string
	seen := make(map[string]bool)
	add := func(recs []string) {
		for _, r := range recs {
			if !seen[r] {
				seen[r] = true
				merged = append(merged, r)
			}
		}
	}

	if sentiment != nil && sentiment.Polarity < -0.1 {
		add([]string{"Rework storefront copy; its tone skews negative and may deter buyers"})
	}
	if marketing != nil {
		add(marketing.Improvements)
	}
	if pricing != nil {
		add(pricing.Recommendations)
	} else {
		add([]string{"Publish product prices; pricing intelligence is unavailable without them"})
	}
	return merged
}

// unifiedConfidence is the weight-averaged module confidence. Failed
// modules keep their weight in the denominator, pulling the composite
// down.
func unifiedConfidence(sentiment *domain.SentimentReport, marketing *domain.MarketingReport, pricing *domain.PricingReport) float64 {
	var sum float64
	if sentiment != nil {
		sum += weightSentiment * sentiment.Confidence
	}
	if marketing != nil {
		sum += weightMarketing * marketing.Confidence
	}
	if pricing != nil {
		sum += weightPricing * pricing.Confidence
	}
	return clamp01(sum / (weightSentiment + weightMarketing + weightPricing))
}
