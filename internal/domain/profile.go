// Package domain provides domain models used across the application.
package domain

import (
	"strings"
	"time"
)

// PolicyKind identifies a storefront policy document.
type PolicyKind string

// Known policy kinds.
const (
	PolicyPrivacy  PolicyKind = "privacy"
	PolicyReturns  PolicyKind = "returns"
	PolicyShipping PolicyKind = "shipping"
	PolicyRefund   PolicyKind = "refund"
)

// AllPolicyKinds lists every policy kind the extractor looks for.
var AllPolicyKinds = []PolicyKind{PolicyPrivacy, PolicyReturns, PolicyShipping, PolicyRefund}

// Product represents a single catalog entry extracted from a storefront.
// Catalog order mirrors the presentation order in the source markup.
type Product struct {
	// Stable identifier within one extracted catalog
	ID string `json:"id" db:"id"`
	// Product title as displayed
	Title string `json:"title" db:"title"`
	// Numeric price, currency-agnostic
	Price float64 `json:"price" db:"price"`
	// Description text, may be empty
	Description string `json:"description,omitempty" db:"description"`
	// Tags or categories attached to the product
	Tags []string `json:"tags,omitempty" db:"-"`
}

// FAQ is a single question/answer pair.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ContactChannels holds the contact options discovered on a storefront.
type ContactChannels struct {
	Emails         []string `json:"emails,omitempty"`
	Phones         []string `json:"phones,omitempty"`
	ContactFormURL string   `json:"contact_form_url,omitempty"`
}

// Empty reports whether no contact channel was found.
func (c ContactChannels) Empty() bool {
	return len(c.Emails) == 0 && len(c.Phones) == 0 && c.ContactFormURL == ""
}

// BrandProfile is the normalized snapshot of one storefront's public content.
// A profile with zero products and no narrative is a valid empty result;
// only fetch or total parse failure is an error.
type BrandProfile struct {
	// Normalized website URL (scheme+host+path, no query/fragment)
	WebsiteURL string `json:"website_url"`
	// Brand name, usually derived from the page <title>
	BrandName string `json:"brand_name,omitempty"`
	// Product catalog in document order
	ProductCatalog []Product `json:"product_catalog"`
	// Policy texts keyed by kind; absent kinds are missing keys
	Policies map[PolicyKind]string `json:"policies"`
	// FAQ entries in document order
	FAQs []FAQ `json:"faqs"`
	// Social handles keyed by platform name
	SocialHandles map[string]string `json:"social_handles"`
	// Contact channels found in page text
	ContactChannels ContactChannels `json:"contact_channels"`
	// Top-level navigation labels in document order, deduplicated
	Navigation []string `json:"navigation"`
	// Concatenated about/brand-story content
	BrandNarrative string `json:"brand_text_context,omitempty"`
	// Field names that could not be resolved during extraction
	Warnings []string `json:"warnings"`
	// Time of the fetch that produced this profile
	FetchedAt time.Time `json:"fetched_at"`
}

// PolicyText returns the text for the given kind, or "" when absent.
func (p *BrandProfile) PolicyText(kind PolicyKind) string {
	if p.Policies == nil {
		return ""
	}
	return p.Policies[kind]
}

// Corpus concatenates narrative, policy texts, FAQ entries, and product
// descriptions into one analysis corpus.
func (p *BrandProfile) Corpus() string {
	var parts []string
	if p.BrandNarrative != "" {
		parts = append(parts, p.BrandNarrative)
	}
	for _, kind := range AllPolicyKinds {
		if text := p.PolicyText(kind); text != "" {
			parts = append(parts, text)
		}
	}
	for i := range p.FAQs {
		parts = append(parts, p.FAQs[i].Question, p.FAQs[i].Answer)
	}
	for i := range p.ProductCatalog {
		if p.ProductCatalog[i].Description != "" {
			parts = append(parts, p.ProductCatalog[i].Description)
		}
	}
	return strings.Join(parts, " ")
}

// SourceFieldCount counts how many top-level profile fields carry data.
// Analyzers scale confidence with this coverage.
func (p *BrandProfile) SourceFieldCount() int {
	count := 0
	if len(p.ProductCatalog) > 0 {
		count++
	}
	if len(p.Policies) > 0 {
		count++
	}
	if len(p.FAQs) > 0 {
		count++
	}
	if len(p.SocialHandles) > 0 {
		count++
	}
	if !p.ContactChannels.Empty() {
		count++
	}
	if len(p.Navigation) > 0 {
		count++
	}
	if p.BrandNarrative != "" {
		count++
	}
	return count
}

// maxProfileFields is the number of fields SourceFieldCount can report.
const maxProfileFields = 7

// Completeness returns the fraction of profile fields that carry data,
// in [0,1].
func (p *BrandProfile) Completeness() float64 {
	return float64(p.SourceFieldCount()) / float64(maxProfileFields)
}
