package analyzer

import (
	"strings"

	"github.com/jonesrussell/storescope/internal/domain"
)

// Caps on the competitive insight lists.
const (
	maxMarketGaps      = 4
	maxDifferentiators = 5
)

// minFAQsForEducation is the FAQ count below which customer education
// content is flagged as a gap.
const minFAQsForEducation = 5

// largeCatalogSize is the catalog size at which product customization
// becomes a credible differentiator.
const largeCatalogSize = 20

// AnalyzeCompetitive derives rule-based competitive positioning from the
// profile: comparable brand categories from the catalog, market gaps,
// and differentiation opportunities. It never fails; sparse profiles
// produce generic guidance.
func AnalyzeCompetitive(profile *domain.BrandProfile) *domain.CompetitiveReport {
	return &domain.CompetitiveReport{
		SimilarBrands:   similarBrands(profile),
		MarketGaps:      marketGaps(profile),
		Differentiation: differentiationOpportunities(profile),
	}
}

// similarBrands buckets the catalog into a retail category and names the
// brand classes that compete in it.
func similarBrands(profile *domain.BrandProfile) []string {
	if len(profile.ProductCatalog) == 0 {
		return []string{"Similar brands analysis requires product data"}
	}

	var sb strings.Builder
	for i := range profile.ProductCatalog {
		sb.WriteString(strings.ToLower(profile.ProductCatalog[i].Title))
		sb.WriteByte(' ')
		for _, tag := range profile.ProductCatalog[i].Tags {
			sb.WriteString(strings.ToLower(tag))
			sb.WriteByte(' ')
		}
	}
	catalogText := sb.String()

	switch {
	case strings.Contains(catalogText, "clothing") || strings.Contains(catalogText, "apparel") ||
		strings.Contains(catalogText, "wear") || strings.Contains(catalogText, "fashion"):
		return []string{"Fashion retail brands", "Apparel companies", "Clothing retailers"}
	case strings.Contains(catalogText, "tech") || strings.Contains(catalogText, "electronic") ||
		strings.Contains(catalogText, "gadget"):
		return []string{"Technology brands", "Electronics retailers", "Gadget companies"}
	default:
		return []string{"Similar product retailers", "Comparable e-commerce brands"}
	}
}

// marketGaps lists underserved areas, starting from gaps common to most
// storefronts and adding profile-specific ones.
func marketGaps(profile *domain.BrandProfile) []string {
	gaps := []string{
		"Personalization features could be enhanced",
		"Mobile app development opportunity",
		"Subscription service potential",
	}

	if len(profile.FAQs) < minFAQsForEducation {
		gaps = append(gaps, "Customer education content gap")
	}
	if !strings.Contains(strings.ToLower(profile.BrandNarrative), "sustainab") {
		gaps = append(gaps, "Sustainability messaging opportunity")
	}

	if len(gaps) > maxMarketGaps {
		gaps = gaps[:maxMarketGaps]
	}
	return gaps
}

// differentiationOpportunities lists ways the brand could stand out from
// the competition identified above.
func differentiationOpportunities(profile *domain.BrandProfile) []string {
	opportunities := []string{
		"Develop unique brand storytelling",
		"Create exclusive product lines",
		"Implement innovative customer service",
	}

	if len(profile.ProductCatalog) > largeCatalogSize {
		opportunities = append(opportunities, "Launch product customization options")
	}

	opportunities = append(opportunities,
		"Build community around brand values",
		"Develop expertise-based content marketing",
	)

	if len(opportunities) > maxDifferentiators {
		opportunities = opportunities[:maxDifferentiators]
	}
	return opportunities
}
