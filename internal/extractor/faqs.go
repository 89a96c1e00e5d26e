package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/storescope/internal/domain"
)

// faqSectionSelectors locate FAQ/Help containers, tried in order.
var faqSectionSelectors = []string{
	"[class*='faq'], [id*='faq']",
	"[class*='accordion']",
	"[class*='help'], [id*='help']",
}

// extractFAQs detects question/answer pairs under a recognizable
// FAQ/Help section, pairing each question heading with the immediately
// following block of body text. Document order is preserved.
func extractFAQs(doc *goquery.Document) []domain.FAQ {
	for _, selector := range faqSectionSelectors {
		var faqs []domain.FAQ
		doc.Find(selector).Each(func(_ int, section *goquery.Selection) {
			faqs = append(faqs, sectionFAQs(section)...)
		})
		if len(faqs) > 0 {
			return dedupeFAQs(faqs)
		}
	}
	return nil
}

// sectionFAQs extracts pairs from one FAQ section, using explicit
// question/answer class markers first and heading/sibling pairs second.
func sectionFAQs(section *goquery.Selection) []domain.FAQ {
	var faqs []domain.FAQ

	questions := section.Find("[class*='question'], dt")
	answers := section.Find("[class*='answer'], dd")
	if questions.Length() > 0 && questions.Length() == answers.Length() {
		questions.Each(func(i int, q *goquery.Selection) {
			question := strings.TrimSpace(q.Text())
			answer := strings.TrimSpace(answers.Eq(i).Text())
			if question != "" && answer != "" {
				faqs = append(faqs, domain.FAQ{Question: question, Answer: answer})
			}
		})
		if len(faqs) > 0 {
			return faqs
		}
	}

	// Heading style: any heading containing "?" answered by the next
	// paragraph or div.
	section.Find("h2, h3, h4, h5, h6").Each(func(_ int, heading *goquery.Selection) {
		question := strings.TrimSpace(heading.Text())
		if !strings.Contains(question, "?") {
			return
		}
		answer := strings.TrimSpace(heading.NextFiltered("p, div").First().Text())
		if answer != "" {
			faqs = append(faqs, domain.FAQ{Question: question, Answer: answer})
		}
	})

	return faqs
}

// dedupeFAQs drops repeated questions, keeping first occurrence order.
func dedupeFAQs(faqs []domain.FAQ) []domain.FAQ {
	seen := make(map[string]bool, len(faqs))
	out := make([]domain.FAQ, 0, len(faqs))
	for _, faq := range faqs {
		key := strings.ToLower(faq.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, faq)
	}
	return out
}
