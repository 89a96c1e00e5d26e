package extractor

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/storescope/internal/domain"
)

// policyPatterns maps each policy kind to the link-text and URL-path
// keywords that identify it.
var policyPatterns = map[domain.PolicyKind][]string{
	domain.PolicyPrivacy:  {"privacy"},
	domain.PolicyRefund:   {"refund"},
	domain.PolicyReturns:  {"return"},
	domain.PolicyShipping: {"shipping", "delivery"},
}

// policyContentSelectors locate the policy body on a fetched policy page,
// tried in order.
var policyContentSelectors = []string{
	"[class*='rte']", "[class*='policy']", "[class*='page-content']", "article", "main",
}

// minPolicyTextLen filters out anchors and stub pages that carry no
// actual policy text.
const minPolicyTextLen = 40

// extractPolicies resolves policy texts. Inline policy sections are
// preferred; otherwise linked policy pages are fetched, bounded by the
// extractor's follow-up budget. Failures leave the kind absent.
func (e *Extractor) extractPolicies(
	ctx context.Context,
	doc *goquery.Document,
	base *url.URL,
	profile *domain.BrandProfile,
) {
	links := policyLinks(doc, base)
	followUps := 0

	for _, kind := range domain.AllPolicyKinds {
		if text := inlinePolicyText(doc, kind); text != "" {
			profile.Policies[kind] = text
			continue
		}

		target, ok := links[kind]
		if !ok || e.pages == nil || followUps >= e.maxFollowUps {
			continue
		}
		followUps++

		body, err := e.pages.Fetch(ctx, target)
		if err != nil {
			e.log.Debug("policy page fetch failed", "kind", string(kind), "url", target, "error", err.Error())
			continue
		}

		if text := policyPageText(body); text != "" {
			profile.Policies[kind] = text
		}
	}
}

// policyLinks finds one candidate link per policy kind by matching anchor
// text and href path against the kind's keywords.
func policyLinks(doc *goquery.Document, base *url.URL) map[domain.PolicyKind]string {
	links := make(map[domain.PolicyKind]string)

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}

		haystack := strings.ToLower(anchor.Text() + " " + href)
		for kind, keywords := range policyPatterns {
			if _, taken := links[kind]; taken {
				continue
			}
			for _, keyword := range keywords {
				if strings.Contains(haystack, keyword) {
					links[kind] = resolved
					break
				}
			}
		}
	})

	return links
}

// inlinePolicyText looks for a policy section embedded in the current
// document, identified by id or class keywords.
func inlinePolicyText(doc *goquery.Document, kind domain.PolicyKind) string {
	for _, keyword := range policyPatterns[kind] {
		section := doc.Find("[id*='" + keyword + "'], [class*='" + keyword + "-policy']").First()
		if section.Length() == 0 {
			continue
		}
		if text := cleanBlockText(section); len(text) >= minPolicyTextLen {
			return text
		}
	}
	return ""
}

// policyPageText extracts the policy body from a fetched policy page.
func policyPageText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	for _, selector := range policyContentSelectors {
		section := doc.Find(selector).First()
		if section.Length() == 0 {
			continue
		}
		if text := cleanBlockText(section); len(text) >= minPolicyTextLen {
			return text
		}
	}
	return ""
}

// cleanBlockText returns the section's text with scripts and styles
// removed and whitespace collapsed.
func cleanBlockText(section *goquery.Selection) string {
	section.Find("script, style").Remove()
	return strings.Join(strings.Fields(section.Text()), " ")
}
