package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// aboutSectionSelector locates About/Our Story content containers.
const aboutSectionSelector = "[class*='about'], [id*='about'], [class*='story'], [id*='story'], [class*='mission']"

// minNarrativeWords filters out captions and button labels when
// collecting narrative paragraphs.
const minNarrativeWords = 20

// maxNarrativeLen caps the narrative so pathological pages don't bloat
// the profile.
const maxNarrativeLen = 4000

// extractNarrative collects brand-story text. An About/Our Story section
// wins when present; readability's primary-content extraction of the
// homepage is the fallback, seeded with the meta description.
func extractNarrative(doc *goquery.Document, body []byte, base *url.URL) string {
	var parts []string

	if meta, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		if meta = strings.TrimSpace(meta); meta != "" {
			parts = append(parts, meta)
		}
	}

	if about := aboutSectionText(doc); about != "" {
		parts = append(parts, about)
		return clampNarrative(strings.Join(parts, "\n\n"))
	}

	if primary := readablePrimaryText(body, base); primary != "" {
		parts = append(parts, primary)
	}

	return clampNarrative(strings.Join(parts, "\n\n"))
}

// aboutSectionText collects substantial paragraphs from About-like
// sections in document order.
func aboutSectionText(doc *goquery.Document) string {
	var paragraphs []string
	seen := make(map[string]bool)

	doc.Find(aboutSectionSelector).Each(func(_ int, section *goquery.Selection) {
		section.Find("p").Each(func(_ int, p *goquery.Selection) {
			text := strings.Join(strings.Fields(p.Text()), " ")
			if len(strings.Fields(text)) < minNarrativeWords || seen[text] {
				return
			}
			seen[text] = true
			paragraphs = append(paragraphs, text)
		})
	})

	return strings.Join(paragraphs, "\n\n")
}

// readablePrimaryText runs readability extraction over the homepage and
// returns its primary descriptive text.
func readablePrimaryText(body []byte, base *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), base)
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(article.TextContent)
	if len(strings.Fields(text)) < minNarrativeWords {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// clampNarrative enforces the narrative length cap on a rune-safe
// boundary.
func clampNarrative(text string) string {
	if len(text) <= maxNarrativeLen {
		return text
	}
	runes := []rune(text)
	if len(runes) > maxNarrativeLen {
		runes = runes[:maxNarrativeLen]
	}
	return string(runes)
}
