// Package extractor parses raw storefront markup into a normalized
// BrandProfile. Every sub-extraction is best-effort: a field that cannot
// be resolved is recorded as a warning and left empty, never surfaced as
// an error. Only content that is not parseable markup at all fails with
// ErrUnsupportedContent.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/logger"
)

// ErrUnsupportedContent is returned when the fetched content is not
// machine-readable markup.
var ErrUnsupportedContent = errors.New("unsupported content")

// Warning field names attached to the profile when a sub-extraction
// resolves nothing.
const (
	warnProducts   = "product_catalog"
	warnPolicies   = "policies"
	warnFAQs       = "faqs"
	warnSocial     = "social_handles"
	warnContact    = "contact_channels"
	warnNavigation = "navigation"
	warnNarrative  = "brand_text_context"
	warnBrandName  = "brand_name"
)

// PageFetcher retrieves additional pages during extraction, bounded by
// the extractor's follow-up budget.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Extractor turns raw page content into BrandProfile values.
type Extractor struct {
	pages        PageFetcher
	log          logger.Interface
	maxFollowUps int
}

// New creates an extractor. pages may be nil, in which case policy texts
// are only resolved when present inline in the fetched content.
func New(pages PageFetcher, maxFollowUps int, log logger.Interface) *Extractor {
	return &Extractor{
		pages:        pages,
		log:          log.WithComponent("extractor"),
		maxFollowUps: maxFollowUps,
	}
}

// Extract parses the homepage content fetched from baseURL and assembles
// a BrandProfile. Sub-extraction failures never abort the remaining
// extractions.
func (e *Extractor) Extract(ctx context.Context, baseURL string, body []byte) (*domain.BrandProfile, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, err.Error())
	}
	if !looksLikeMarkup(doc) {
		return nil, fmt.Errorf("%w: no recognizable document structure", ErrUnsupportedContent)
	}

	base, baseErr := url.Parse(baseURL)
	if baseErr != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, baseURL)
	}

	profile := &domain.BrandProfile{
		WebsiteURL: baseURL,
		Policies:   make(map[domain.PolicyKind]string),
		FetchedAt:  time.Now().UTC(),
	}

	profile.BrandName = extractBrandName(doc)
	if profile.BrandName == "" {
		profile.Warnings = append(profile.Warnings, warnBrandName)
	}

	profile.ProductCatalog = extractProducts(doc)
	if len(profile.ProductCatalog) == 0 {
		profile.Warnings = append(profile.Warnings, warnProducts)
	}

	e.extractPolicies(ctx, doc, base, profile)
	if len(profile.Policies) == 0 {
		profile.Warnings = append(profile.Warnings, warnPolicies)
	}

	profile.FAQs = extractFAQs(doc)
	if len(profile.FAQs) == 0 {
		profile.Warnings = append(profile.Warnings, warnFAQs)
	}

	profile.SocialHandles = extractSocialHandles(doc)
	if len(profile.SocialHandles) == 0 {
		profile.Warnings = append(profile.Warnings, warnSocial)
	}

	profile.ContactChannels = extractContactChannels(doc, base)
	if profile.ContactChannels.Empty() {
		profile.Warnings = append(profile.Warnings, warnContact)
	}

	profile.Navigation = extractNavigation(doc)
	if len(profile.Navigation) == 0 {
		profile.Warnings = append(profile.Warnings, warnNavigation)
	}

	profile.BrandNarrative = extractNarrative(doc, body, base)
	if profile.BrandNarrative == "" {
		profile.Warnings = append(profile.Warnings, warnNarrative)
	}

	e.log.Debug("extraction complete",
		"url", baseURL,
		"products", len(profile.ProductCatalog),
		"warnings", len(profile.Warnings),
	)

	return profile, nil
}

// looksLikeMarkup reports whether the parsed document carries any HTML
// structure. goquery parses almost any byte stream, so plain text and
// binary payloads are detected by the absence of structural elements.
func looksLikeMarkup(doc *goquery.Document) bool {
	return doc.Find("body *").Length() > 0 || doc.Find("head *").Length() > 0
}

// extractBrandName derives the brand name from the page title, stripping
// storefront platform suffixes.
func extractBrandName(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, exists := doc.Find("meta[property='og:site_name']").Attr("content"); exists {
			return strings.TrimSpace(og)
		}
		return ""
	}

	for _, sep := range []string{"|", "–", "—", " - "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}

// resolveURL resolves href against the page base, rejecting javascript:
// and empty targets.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "#") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
