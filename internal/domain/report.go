package domain

import "time"

// SentimentReport carries the aggregate lexical sentiment of a profile's
// text corpus.
type SentimentReport struct {
	ID string `json:"id"`
	// Polarity in [-1,1], negative..positive
	Polarity float64 `json:"overall_sentiment_score"`
	// Percentage splits derived from polarity, summing to 100
	PositivePct float64 `json:"positive_percentage"`
	NegativePct float64 `json:"negative_percentage"`
	NeutralPct  float64 `json:"neutral_percentage"`
	// Most frequent non-stopword terms in the corpus
	KeyThemes []string `json:"dominant_themes"`
	// Confidence in [0,1]
	Confidence  float64   `json:"confidence_level"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PersonaScore is one persona label with its normalized score.
type PersonaScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// MarketingReport carries persona classification and derived marketing
// guidance.
type MarketingReport struct {
	ID string `json:"id"`
	// Personas ranked by score; scores sum to 1
	Personas []PersonaScore `json:"identified_personas"`
	// Dominant persona label
	BrandPersonality string `json:"brand_personality"`
	// Content suggestions derived from the dominant persona
	ContentStrategy []string `json:"content_strategy"`
	// Frequent noun-like terms from product titles and navigation
	SEOKeywords []string `json:"seo_keywords"`
	// Data-completeness driven suggestions
	Improvements []string `json:"improvement_suggestions"`
	// Detected strengths
	Advantages  []string  `json:"competitive_advantages"`
	Confidence  float64   `json:"confidence_level"`
	GeneratedAt time.Time `json:"generated_at"`
}

// PricingTier classifies a store's price positioning.
type PricingTier string

// Pricing tiers.
const (
	TierPremium     PricingTier = "premium"
	TierCompetitive PricingTier = "competitive"
	TierValue       PricingTier = "value"
)

// PricingReport carries price distribution statistics and tiering for a
// non-empty catalog.
type PricingReport struct {
	ID         string  `json:"id"`
	PriceRange string  `json:"price_range"`
	Min        float64 `json:"min_price"`
	Max        float64 `json:"max_price"`
	Mean       float64 `json:"mean_price"`
	Median     float64 `json:"median_price"`
	// Quartile boundaries Q1, Q2, Q3
	Quartiles [3]float64  `json:"quartiles"`
	Tier      PricingTier `json:"pricing_tier"`
	// Catalog counts per price bucket
	Distribution map[string]int `json:"price_distribution"`
	// 1-3 ranked recommendation strings
	Recommendations []string  `json:"recommendations"`
	Confidence      float64   `json:"confidence_level"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// CompetitiveReport carries rule-based competitive positioning insights:
// comparable brand categories, market gaps, and ways to stand out.
type CompetitiveReport struct {
	SimilarBrands   []string `json:"similar_brands"`
	MarketGaps      []string `json:"market_gap_analysis"`
	Differentiation []string `json:"differentiation_opportunities"`
}

// UnifiedReport merges all module outputs with a composite health score.
type UnifiedReport struct {
	ID        string `json:"id"`
	BrandName string `json:"brand_name,omitempty"`
	// Business health score in [0,10]
	HealthScore float64          `json:"business_health_score"`
	Sentiment   *SentimentReport `json:"sentiment_analysis"`
	Marketing   *MarketingReport `json:"marketing_intelligence"`
	// Nil when the catalog was empty; PricingDegraded is set instead
	Pricing         *PricingReport     `json:"pricing_intelligence,omitempty"`
	PricingDegraded bool               `json:"pricing_degraded"`
	Competitive     *CompetitiveReport `json:"competitive_intelligence"`
	// Fraction of profile fields that carried data, in [0,1]
	DataQuality float64 `json:"data_quality_score"`
	// Module recommendations merged highest weight first
	Recommendations []string  `json:"strategic_recommendations"`
	Confidence      float64   `json:"confidence_level"`
	GeneratedAt     time.Time `json:"generated_at"`
}
