package extractor

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/storescope/internal/domain"
)

// emailPattern matches email-address-shaped tokens in page text.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// phonePattern matches phone-number-shaped tokens: optional country code,
// then three digit groups with common separators.
var phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[\s\-.]?)?\(?\d{3}\)?[\s\-.]\d{3}[\s\-.]\d{4}`)

// contactPathKeywords identify a contact-form link by its path or text.
var contactPathKeywords = []string{"contact", "support", "help-center"}

// extractContactChannels regex-extracts emails and phone tokens from the
// full text content and detects a contact-form link by path heuristic.
func extractContactChannels(doc *goquery.Document, base *url.URL) domain.ContactChannels {
	text := doc.Text()

	// mailto: anchors are included alongside body text matches.
	doc.Find("a[href^='mailto:']").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		text += " " + strings.TrimPrefix(href, "mailto:")
	})

	channels := domain.ContactChannels{
		Emails: uniqueSorted(emailPattern.FindAllString(text, -1)),
		Phones: uniqueSorted(phonePattern.FindAllString(text, -1)),
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, _ := anchor.Attr("href")
		haystack := strings.ToLower(href + " " + anchor.Text())
		for _, keyword := range contactPathKeywords {
			if strings.Contains(haystack, keyword) {
				if resolved := resolveURL(base, href); resolved != "" {
					channels.ContactFormURL = resolved
					return false
				}
			}
		}
		return true
	})

	return channels
}

// uniqueSorted dedupes tokens and sorts them for deterministic output.
func uniqueSorted(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		normalized := strings.TrimSpace(token)
		if normalized == "" || seen[strings.ToLower(normalized)] {
			continue
		}
		seen[strings.ToLower(normalized)] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out
}
