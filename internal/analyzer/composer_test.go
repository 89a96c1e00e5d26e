package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/storescope/internal/analyzer"
	"github.com/jonesrussell/storescope/internal/domain"
)

func fullProfile() *domain.BrandProfile {
	profile := profileWithNarrative(
		"Our customers love our excellent durable products. Quality gear, " +
			"reliable service, and fast shipping from a trusted family business.")
	profile.ProductCatalog = []domain.Product{
		{ID: "a", Title: "Tote", Price: 25, Description: "Great canvas tote"},
		{ID: "b", Title: "Wallet", Price: 49, Description: "Durable wallet"},
		{ID: "c", Title: "Belt", Price: 35, Description: "Leather belt"},
	}
	profile.Policies[domain.PolicyReturns] = "Returns accepted within 30 days of delivery."
	profile.FAQs = []domain.FAQ{{Question: "Do you ship abroad?", Answer: "Yes."}}
	profile.SocialHandles["instagram"] = "acme"
	profile.ContactChannels.Emails = []string{"hi@acme.com"}
	profile.Navigation = []string{"Shop", "About"}
	return profile
}

func TestComposeReport_FullProfile(t *testing.T) {
	report, err := analyzer.ComposeReport(testConfig(), fullProfile())
	require.NoError(t, err)

	assert.NotNil(t, report.Sentiment)
	assert.NotNil(t, report.Marketing)
	assert.NotNil(t, report.Pricing)
	assert.NotNil(t, report.Competitive)
	assert.NotEmpty(t, report.Competitive.SimilarBrands)
	assert.False(t, report.PricingDegraded)

	assert.GreaterOrEqual(t, report.HealthScore, 0.0)
	assert.LessOrEqual(t, report.HealthScore, 10.0)
	assert.GreaterOrEqual(t, report.Confidence, 0.0)
	assert.LessOrEqual(t, report.Confidence, 1.0)
	assert.Equal(t, "Acme", report.BrandName)
	assert.NotEmpty(t, report.ID)
}

func TestComposeReport_EmptyCatalogDegradesPricing(t *testing.T) {
	profile := fullProfile()
	profile.ProductCatalog = nil

	report, err := analyzer.ComposeReport(testConfig(), profile)
	require.NoError(t, err)

	assert.Nil(t, report.Pricing)
	assert.True(t, report.PricingDegraded)

	// The degraded report must score below the complete one on both
	// confidence and health.
	full, err := analyzer.ComposeReport(testConfig(), fullProfile())
	require.NoError(t, err)
	assert.Less(t, report.Confidence, full.Confidence)
	assert.Less(t, report.HealthScore, full.HealthScore)

	// And it should tell the merchant what is missing.
	joined := ""
	for _, rec := range report.Recommendations {
		joined += rec + " "
	}
	assert.Contains(t, joined, "prices")
}

func TestComposeReport_EmptyCorpusDegradesSentiment(t *testing.T) {
	profile := &domain.BrandProfile{
		WebsiteURL:    "https://shop.example.com",
		Policies:      map[domain.PolicyKind]string{},
		SocialHandles: map[string]string{},
		ProductCatalog: []domain.Product{
			{ID: "a", Title: "Tote", Price: 25},
			{ID: "b", Title: "Wallet", Price: 49},
		},
	}

	report, err := analyzer.ComposeReport(testConfig(), profile)
	require.NoError(t, err)

	assert.Nil(t, report.Sentiment)
	assert.NotNil(t, report.Marketing)
	assert.NotNil(t, report.Pricing)
}

func TestComposeReport_DataQualityTracksCompleteness(t *testing.T) {
	full, err := analyzer.ComposeReport(testConfig(), fullProfile())
	require.NoError(t, err)

	sparse := profileWithNarrative("Just one field of content for this storefront profile.")
	sparseReport, err := analyzer.ComposeReport(testConfig(), sparse)
	require.NoError(t, err)

	assert.Greater(t, full.DataQuality, sparseReport.DataQuality)
}

func TestComposeReport_RecommendationsDeduplicated(t *testing.T) {
	report, err := analyzer.ComposeReport(testConfig(), fullProfile())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, rec := range report.Recommendations {
		assert.False(t, seen[rec], "duplicate recommendation: %s", rec)
		seen[rec] = true
	}
}
