package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/domain"
)

func catalogProfile(prices ...float64) *domain.BrandProfile {
	profile := profileWithNarrative("A store selling goods.")
	for i, p := range prices {
		profile.ProductCatalog = append(profile.ProductCatalog, domain.Product{
			ID:    "p" + string(rune('a'+i)),
			Title: "Product",
			Price: p,
		})
	}
	return profile
}

func TestAnalyzePricing_Statistics(t *testing.T) {
	profile := catalogProfile(10, 20, 30, 40)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, 10.0, report.Min)
	assert.Equal(t, 40.0, report.Max)
	assert.Equal(t, 25.0, report.Mean)
	assert.Equal(t, 25.0, report.Median)
	assert.Equal(t, "$10.00 - $40.00", report.PriceRange)
	assert.Equal(t, 17.5, report.Quartiles[0])
	assert.Equal(t, 32.5, report.Quartiles[2])
}

func TestAnalyzePricing_PremiumTier(t *testing.T) {
	// High mean, tight spread.
	profile := catalogProfile(500, 750, 1000, 1250, 1500, 1750, 2000, 900, 1100, 1300)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.TierPremium, report.Tier)
}

func TestAnalyzePricing_ValueTier(t *testing.T) {
	profile := catalogProfile(5, 8, 12, 15, 20)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.TierValue, report.Tier)
}

func TestAnalyzePricing_CompetitiveTier(t *testing.T) {
	profile := catalogProfile(40, 55, 70, 85, 100)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.TierCompetitive, report.Tier)
}

func TestAnalyzePricing_ScatteredHighPricesAreCompetitive(t *testing.T) {
	// Mean clears the premium threshold but the spread is too wide.
	profile := catalogProfile(10, 15, 20, 25, 2000)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, domain.TierCompetitive, report.Tier)
}

func TestAnalyzePricing_Distribution(t *testing.T) {
	profile := catalogProfile(10, 30, 75, 150, 500)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Distribution["under_25"])
	assert.Equal(t, 1, report.Distribution["25_to_50"])
	assert.Equal(t, 1, report.Distribution["50_to_100"])
	assert.Equal(t, 1, report.Distribution["100_to_200"])
	assert.Equal(t, 1, report.Distribution["over_200"])
}

func TestAnalyzePricing_Recommendations(t *testing.T) {
	profile := catalogProfile(5, 8, 12, 15, 20)

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(report.Recommendations), 1)
	assert.LessOrEqual(t, len(report.Recommendations), 3)
}

func TestAnalyzePricing_EmptyCatalog(t *testing.T) {
	profile := profileWithNarrative("A store with no priced products listed.")

	_, err := analyzer.AnalyzePricing(testConfig(), profile)
	assert.ErrorIs(t, err, analyzer.ErrInsufficientData)
}

func TestAnalyzePricing_UnpricedProductsIgnored(t *testing.T) {
	profile := catalogProfile(50, 60)
	profile.ProductCatalog = append(profile.ProductCatalog, domain.Product{Title: "No price"})

	report, err := analyzer.AnalyzePricing(testConfig(), profile)
	require.NoError(t, err)

	assert.Equal(t, 55.0, report.Mean)
}
