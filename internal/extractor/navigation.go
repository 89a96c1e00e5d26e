package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// navSelectors locate the top-level menu, tried in order.
var navSelectors = []string{
	"nav a",
	"header a",
	"[class*='menu'] a, [class*='nav'] a",
}

// maxNavLabelWords filters out anchors that are paragraphs rather than
// menu labels.
const maxNavLabelWords = 4

// extractNavigation collects top-level menu anchor texts in document
// order, deduplicated.
func extractNavigation(doc *goquery.Document) []string {
	for _, selector := range navSelectors {
		var labels []string
		seen := make(map[string]bool)

		doc.Find(selector).Each(func(_ int, anchor *goquery.Selection) {
			label := strings.Join(strings.Fields(anchor.Text()), " ")
			if label == "" || len(strings.Fields(label)) > maxNavLabelWords {
				return
			}
			key := strings.ToLower(label)
			if seen[key] {
				return
			}
			seen[key] = true
			labels = append(labels, label)
		})

		if len(labels) > 0 {
			return labels
		}
	}
	return nil
}
