package analyzer

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/storescope/internal/domain"
)

// distributionBuckets partition catalog prices for the report's
// histogram. Upper bounds are exclusive; the last bucket is open.
var distributionBuckets = []struct {
	label string
	upper float64
}{
	{"under_25", 25},
	{"25_to_50", 50},
	{"50_to_100", 100},
	{"100_to_200", 200},
	{"over_200", math.Inf(1)},
}

// AnalyzePricing computes price statistics and tier positioning for the
// profile's catalog. It returns ErrInsufficientData when no product
// carries a usable price.
func AnalyzePricing(cfg Config, profile *domain.BrandProfile) (*domain.PricingReport, error) {
	prices := make([]float64, 0, len(profile.ProductCatalog))
	for _, p := range profile.ProductCatalog {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("pricing analysis: %w", ErrInsufficientData)
	}
	sort.Float64s(prices)

	min, max := prices[0], prices[len(prices)-1]
	mean := meanOf(prices)
	quartiles := quartilesOf(prices)
	tier := classifyTier(cfg, mean, prices)

	return &domain.PricingReport{
		ID:              uuid.NewString(),
		PriceRange:      fmt.Sprintf("$%.2f - $%.2f", min, max),
		Min:             min,
		Max:             max,
		Mean:            mean,
		Median:          quartiles[1],
		Quartiles:       quartiles,
		Tier:            tier,
		Distribution:    distributionOf(prices),
		Recommendations: pricingRecommendations(cfg, tier, mean, prices),
		Confidence:      clamp01(float64(len(prices)) / 10),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

func meanOf(prices []float64) float64 {
	var sum float64
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices))
}

// quartilesOf returns Q1, Q2 (median), Q3 for a sorted slice using
// linear interpolation between ranks.
func quartilesOf(sorted []float64) [3]float64 {
	return [3]float64{
		percentile(sorted, 0.25),
		percentile(sorted, 0.50),
		percentile(sorted, 0.75),
	}
}

func percentile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// classifyTier places the catalog in a pricing tier. A catalog only
// earns the premium tier when its mean clears the premium threshold
// and prices cluster tightly enough, measured by the coefficient of
// variation against the configured tolerance. A high mean with wildly
// scattered prices reads as competitive, not premium.
func classifyTier(cfg Config, mean float64, prices []float64) domain.PricingTier {
	if mean < cfg.ValueThreshold {
		return domain.TierValue
	}
	if mean > cfg.PremiumThreshold {
		if cv := coefficientOfVariation(mean, prices); cv <= cfg.VarianceTolerance {
			return domain.TierPremium
		}
	}
	return domain.TierCompetitive
}

func coefficientOfVariation(mean float64, prices []float64) float64 {
	if mean == 0 || len(prices) < 2 {
		return 0
	}
	var sumSq float64
	for _, p := range prices {
		d := p - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq/float64(len(prices))) / mean
}

func distributionOf(prices []float64) map[string]int {
	dist := make(map[string]int, len(distributionBuckets))
	for _, b := range distributionBuckets {
		dist[b.label] = 0
	}
	for _, p := range prices {
		for _, b := range distributionBuckets {
			if p < b.upper {
				dist[b.label]++
				break
			}
		}
	}
	return dist
}

// pricingRecommendations returns one to three suggestions ranked by
// expected impact for the detected tier.
func pricingRecommendations(cfg Config, tier domain.PricingTier, mean float64, prices []float64) []string {
	var recs []string
	switch tier {
	case domain.TierPremium:
		recs = append(recs, "Reinforce premium positioning with bundled services and guarantees")
		recs = append(recs, "Introduce a flagship hero product to anchor the price ladder")
	case domain.TierValue:
		recs = append(recs, "Test modest price increases on best sellers to lift margin")
		recs = append(recs, "Add volume bundles to raise average order value")
	default:
		recs = append(recs, "Differentiate on service and brand rather than competing on price alone")
		if coefficientOfVariation(mean, prices) > cfg.VarianceTolerance {
			recs = append(recs, "Tighten the price ladder; a scattered range blurs positioning")
		}
	}
	if len(prices) < 5 {
		recs = append(recs, "Expand the priced catalog to give shoppers clearer comparison points")
	}
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
