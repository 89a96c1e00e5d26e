package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/storescope/internal/domain"
)

// priceTokenPattern matches a currency-symbol-plus-digits token, e.g.
// "$19.99", "€ 1.299,00", "₹2,499".
var priceTokenPattern = regexp.MustCompile(`[$£€₹]\s*\d[\d,.]*`)

// numericPattern strips everything but digits, dots, and commas.
var numericPattern = regexp.MustCompile(`[\d,.]+`)

// slugPattern collapses non-alphanumeric runs when building product IDs.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// productStrategy is one way of locating product blocks in a document.
// Strategies are tried in priority order; the first non-empty result wins.
type productStrategy func(doc *goquery.Document) []domain.Product

// productStrategies in priority order: structured markup first, then
// class-name heuristics, then generic price-adjacent block matching.
var productStrategies = []productStrategy{
	schemaOrgProducts,
	productCardBlocks,
	priceAdjacentBlocks,
}

// extractProducts scans the document for catalog entries, preserving
// document order and deduplicating by (title, price).
func extractProducts(doc *goquery.Document) []domain.Product {
	for _, strategy := range productStrategies {
		if products := dedupeProducts(strategy(doc)); len(products) > 0 {
			return products
		}
	}
	return nil
}

// schemaOrgProducts extracts products from schema.org microdata blocks.
func schemaOrgProducts(doc *goquery.Document) []domain.Product {
	var products []domain.Product

	doc.Find("[itemtype*='schema.org/Product']").Each(func(_ int, block *goquery.Selection) {
		title := strings.TrimSpace(block.Find("[itemprop='name']").First().Text())
		if title == "" {
			return
		}

		priceText, exists := block.Find("[itemprop='price']").First().Attr("content")
		if !exists {
			priceText = block.Find("[itemprop='price']").First().Text()
		}

		price, ok := parsePrice(priceText)
		if !ok {
			return
		}

		products = append(products, domain.Product{
			Title:       title,
			Price:       price,
			Description: strings.TrimSpace(block.Find("[itemprop='description']").First().Text()),
			Tags:        collectTags(block),
		})
	})

	return products
}

// productCardBlocks extracts products from elements whose class names
// follow common storefront card conventions.
func productCardBlocks(doc *goquery.Document) []domain.Product {
	var products []domain.Product

	doc.Find("[class*='product-card'], [class*='product-item'], [class*='product-grid-item']").
		Each(func(_ int, card *goquery.Selection) {
			title := firstText(card,
				"[class*='title']", "[class*='name']", "h1", "h2", "h3", "h4", "a")
			if title == "" {
				return
			}

			price, ok := parsePrice(priceTokenPattern.FindString(card.Text()))
			if !ok {
				return
			}

			products = append(products, domain.Product{
				Title:       title,
				Price:       price,
				Description: firstText(card, "[class*='description'], p"),
			})
		})

	return products
}

// priceAdjacentBlocks is the generic fallback: repeated sibling blocks
// under a common ancestor that contain a price-like token next to a
// title-like element.
func priceAdjacentBlocks(doc *goquery.Document) []domain.Product {
	// Count price-bearing children per parent to find repeated groups.
	groupSizes := make(map[*goquery.Selection]int)
	var parents []*goquery.Selection

	doc.Find("div, li, article").Each(func(_ int, block *goquery.Selection) {
		if !priceTokenPattern.MatchString(ownText(block)) {
			return
		}
		parent := block.Parent()
		found := false
		for _, p := range parents {
			if p.Length() > 0 && parent.Length() > 0 && p.Get(0) == parent.Get(0) {
				groupSizes[p]++
				found = true
				break
			}
		}
		if !found {
			parents = append(parents, parent)
			groupSizes[parent] = 1
		}
	})

	var products []domain.Product
	for _, parent := range parents {
		if groupSizes[parent] < 2 {
			continue
		}
		parent.Children().Each(func(_ int, block *goquery.Selection) {
			token := priceTokenPattern.FindString(block.Text())
			if token == "" {
				return
			}
			title := firstText(block, "h1, h2, h3, h4, h5, h6, [class*='title'], [class*='name'], a")
			if title == "" {
				return
			}
			price, ok := parsePrice(token)
			if !ok {
				return
			}
			products = append(products, domain.Product{Title: title, Price: price})
		})
	}

	return products
}

// dedupeProducts removes duplicate (title, price) pairs, keeping first
// occurrence order, and assigns stable IDs.
func dedupeProducts(products []domain.Product) []domain.Product {
	if len(products) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(products))
	out := make([]domain.Product, 0, len(products))
	for i := range products {
		key := fmt.Sprintf("%s|%.2f", strings.ToLower(products[i].Title), products[i].Price)
		if seen[key] {
			continue
		}
		seen[key] = true
		products[i].ID = productID(products[i].Title, len(out))
		out = append(out, products[i])
	}
	return out
}

// productID builds a catalog-stable identifier from the title slug and
// catalog position.
func productID(title string, position int) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	const maxSlugLen = 40
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return fmt.Sprintf("%s-%d", slug, position+1)
}

// parsePrice converts a price-like token to a float. Returns false when
// no usable number is present.
func parsePrice(text string) (float64, bool) {
	token := numericPattern.FindString(text)
	if token == "" {
		return 0, false
	}

	// Treat a comma followed by exactly two digits at the end as a
	// decimal separator, in which case any dots before it are thousands
	// separators ("1.299,00"). All other commas are thousands separators.
	if idx := strings.LastIndex(token, ","); idx != -1 && len(token)-idx == 3 && !strings.Contains(token[idx:], ".") {
		token = strings.ReplaceAll(token[:idx], ".", "") + "." + token[idx+1:]
	}
	token = strings.ReplaceAll(token, ",", "")

	price, err := strconv.ParseFloat(token, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

// collectTags gathers tag-like item properties from a product block.
func collectTags(block *goquery.Selection) []string {
	var tags []string
	block.Find("[itemprop='category'], [class*='tag']").Each(func(_ int, s *goquery.Selection) {
		if tag := strings.TrimSpace(s.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})
	return tags
}

// firstText returns the first non-empty trimmed text among the given
// selectors within the block.
func firstText(block *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(block.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// ownText returns the block's text including descendants. Kept as a
// helper so price matching reads the same in every strategy.
func ownText(block *goquery.Selection) string {
	return block.Text()
}
