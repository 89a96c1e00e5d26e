package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/storescope/internal/domain"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "https://shop.example.com", "https://shop.example.com"},
		{"uppercase host", "HTTPS://Shop.Example.COM", "https://shop.example.com"},
		{"trailing slash", "https://shop.example.com/", "https://shop.example.com"},
		{"query dropped", "https://shop.example.com?utm_source=news", "https://shop.example.com"},
		{"fragment dropped", "https://shop.example.com#hero", "https://shop.example.com"},
		{"path kept", "https://shop.example.com/collections/all", "https://shop.example.com/collections/all"},
		{"path slash trimmed", "https://shop.example.com/collections/", "https://shop.example.com/collections"},
		{"http kept", "http://shop.example.com", "http://shop.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizeURL(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "ftp://example.com", "example.com", "://bad"} {
		_, err := domain.NormalizeURL(raw)
		if !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("NormalizeURL(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestCorpus_CombinesTextSources(t *testing.T) {
	profile := &domain.BrandProfile{
		BrandNarrative: "Our story began in a garage.",
		Policies: map[domain.PolicyKind]string{
			domain.PolicyReturns: "Returns within 30 days.",
		},
		FAQs: []domain.FAQ{{Question: "Do you ship abroad?", Answer: "Yes, worldwide."}},
		ProductCatalog: []domain.Product{
			{Title: "Tote", Description: "A durable canvas tote."},
			{Title: "No description"},
		},
	}

	corpus := profile.Corpus()
	for _, want := range []string{"garage", "30 days", "worldwide", "canvas tote"} {
		assert.Contains(t, corpus, want)
	}
	assert.False(t, strings.Contains(corpus, "No description"),
		"titles without descriptions must not leak into the corpus")
}

func TestCorpus_Empty(t *testing.T) {
	profile := &domain.BrandProfile{}
	assert.Empty(t, profile.Corpus())
}

func TestCompleteness(t *testing.T) {
	empty := &domain.BrandProfile{}
	assert.Zero(t, empty.Completeness())

	full := &domain.BrandProfile{
		ProductCatalog:  []domain.Product{{Title: "Tote"}},
		Policies:        map[domain.PolicyKind]string{domain.PolicyPrivacy: "text"},
		FAQs:            []domain.FAQ{{Question: "Q", Answer: "A"}},
		SocialHandles:   map[string]string{"instagram": "acme"},
		ContactChannels: domain.ContactChannels{Emails: []string{"hi@acme.com"}},
		Navigation:      []string{"Shop"},
		BrandNarrative:  "Story.",
	}
	assert.Equal(t, 1.0, full.Completeness())

	half := &domain.BrandProfile{
		ProductCatalog: []domain.Product{{Title: "Tote"}},
		BrandNarrative: "Story.",
	}
	assert.InDelta(t, 2.0/7.0, half.Completeness(), 0.001)
}
