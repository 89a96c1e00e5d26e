// Package analyze implements the one-shot storefront analysis command.
package analyze

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/storescope/cmd/common"
	"github.com/jonesrussell/storescope/internal/domain"
)

const (
	// DefaultListPreviewLength caps list-valued cells before truncation
	DefaultListPreviewLength = 90

	// maxCatalogRows caps the product rows printed for large catalogs
	maxCatalogRows = 15
)

// Command returns the analyze command for use in the root command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <website-url>",
		Short: "Analyze a storefront and print the intelligence report",
		Long: `Analyze fetches a storefront homepage, extracts its brand profile,
and prints the unified intelligence report.

Examples:
  # Analyze a storefront
  storescope analyze https://shop.example.com

  # Include the extracted product catalog
  storescope analyze --catalog https://shop.example.com

  # Print the last persisted report without refetching
  storescope analyze --stored https://shop.example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}
	cmd.Flags().Bool("catalog", false, "Print the extracted product catalog")
	cmd.Flags().Bool("stored", false, "Print the last persisted report instead of refetching")
	return cmd
}

// runAnalyze executes the analyze command against the URL argument.
func runAnalyze(cmd *cobra.Command, args []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	pipeline := common.BuildPipeline(deps)
	defer pipeline.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	url := args[0]

	if stored, _ := cmd.Flags().GetBool("stored"); stored {
		return runStored(ctx, pipeline, url)
	}

	profile, err := pipeline.Service.Profile(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", url, err)
	}

	report, err := pipeline.Service.UnifiedReport(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to compose report for %s: %w", url, err)
	}

	renderProfileSummary(profile)
	renderReport(report)

	showCatalog, _ := cmd.Flags().GetBool("catalog")
	if showCatalog {
		renderCatalog(profile.ProductCatalog)
	}

	if len(profile.Warnings) > 0 {
		fmt.Printf("\nExtraction warnings: %s\n", strings.Join(profile.Warnings, ", "))
	}

	return nil
}

// runStored prints the most recent persisted report for the URL without
// touching the network.
func runStored(ctx context.Context, pipeline *common.Pipeline, rawURL string) error {
	if pipeline.Repo == nil {
		return fmt.Errorf("--stored requires database.enabled with a reachable database")
	}

	key, err := domain.NormalizeURL(rawURL)
	if err != nil {
		return fmt.Errorf("invalid website url %s: %w", rawURL, err)
	}

	report, err := pipeline.Repo.LatestReport(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to load stored report for %s: %w", key, err)
	}

	renderReport(report)
	fmt.Printf("\nReport generated at %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	return nil
}

// newTable sets up a table writer with the shared styling.
func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(header)
	return t
}

func renderProfileSummary(profile *domain.BrandProfile) {
	t := newTable(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Brand", orNA(profile.BrandName)},
		{"URL", profile.WebsiteURL},
		{"Products", len(profile.ProductCatalog)},
		{"Policies", len(profile.Policies)},
		{"FAQs", len(profile.FAQs)},
		{"Social channels", len(profile.SocialHandles)},
		{"Fetched", profile.FetchedAt.Format("2006-01-02 15:04:05 MST")},
	})
	t.Render()
}

func renderReport(report *domain.UnifiedReport) {
	t := newTable(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Business health", fmt.Sprintf("%.1f / 10", report.HealthScore)},
		{"Data quality", fmt.Sprintf("%.0f%%", report.DataQuality*100)},
		{"Confidence", fmt.Sprintf("%.0f%%", report.Confidence*100)},
	})

	if s := report.Sentiment; s != nil {
		t.AppendRow(table.Row{"Sentiment polarity", fmt.Sprintf("%+.2f", s.Polarity)})
		t.AppendRow(table.Row{"Key themes", listPreview(s.KeyThemes)})
	}
	if m := report.Marketing; m != nil {
		t.AppendRow(table.Row{"Brand personality", m.BrandPersonality})
		t.AppendRow(table.Row{"SEO keywords", listPreview(m.SEOKeywords)})
	}
	if p := report.Pricing; p != nil {
		t.AppendRow(table.Row{"Pricing tier", string(p.Tier)})
		t.AppendRow(table.Row{"Price range", p.PriceRange})
	} else {
		t.AppendRow(table.Row{"Pricing tier", "unavailable (no priced products)"})
	}
	t.Render()

	if len(report.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for i, rec := range report.Recommendations {
			fmt.Printf("  %d. %s\n", i+1, rec)
		}
	}
}

func renderCatalog(products []domain.Product) {
	if len(products) == 0 {
		fmt.Println("\nNo products extracted.")
		return
	}

	t := newTable(table.Row{"#", "Product", "Price"})
	for i, p := range products {
		if i >= maxCatalogRows {
			t.AppendFooter(table.Row{"", fmt.Sprintf("... and %d more", len(products)-maxCatalogRows), ""})
			break
		}
		price := "-"
		if p.Price > 0 {
			price = fmt.Sprintf("$%.2f", p.Price)
		}
		t.AppendRow(table.Row{i + 1, p.Title, price})
	}
	t.Render()
}

func listPreview(items []string) string {
	joined := strings.Join(items, ", ")
	if len(joined) > DefaultListPreviewLength {
		return joined[:DefaultListPreviewLength] + "..."
	}
	return orNA(joined)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
