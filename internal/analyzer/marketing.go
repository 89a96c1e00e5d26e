package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/storescope/internal/domain"
)

// AnalyzeMarketing profiles the storefront's audience personas, brand
// personality, and keyword surface. It never fails: a sparse profile
// yields uniform persona scores with low confidence.
func AnalyzeMarketing(cfg Config, profile *domain.BrandProfile) *domain.MarketingReport {
	tokens := tokenize(profile.Corpus())

	personas := scorePersonas(tokens)
	dominant := dominantPersona(personas)

	return &domain.MarketingReport{
		ID:               uuid.NewString(),
		Personas:         personas,
		BrandPersonality: brandPersonality(dominant, tokens),
		ContentStrategy:  contentStrategies[dominant.Label],
		SEOKeywords:      seoKeywords(cfg, profile),
		Improvements:     improvements(profile),
		Advantages:       advantages(profile),
		Confidence:       clamp01(profile.Completeness() * clamp01(float64(len(tokens))/300)),
		GeneratedAt:      time.Now().UTC(),
	}
}

// scorePersonas returns normalized persona scores summing to 1. When
// no lexicon term matches, every persona gets an equal share.
func scorePersonas(tokens []string) []domain.PersonaScore {
	raw := make(map[string]float64, len(personaLexicons))
	var total float64
	for persona, lexicon := range personaLexicons {
		var score float64
		for _, tok := range tokens {
			if w, ok := lexicon[tok]; ok {
				score += float64(w)
			}
		}
		raw[persona] = score
		total += score
	}

	scores := make([]domain.PersonaScore, 0, len(raw))
	for persona, score := range raw {
		normalized := 1.0 / float64(len(raw))
		if total > 0 {
			normalized = score / total
		}
		scores = append(scores, domain.PersonaScore{Label: persona, Score: normalized})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Label < scores[j].Label
	})
	return scores
}

func dominantPersona(scores []domain.PersonaScore) domain.PersonaScore {
	if len(scores) == 0 {
		return domain.PersonaScore{Label: PersonaYoungCasual}
	}
	return scores[0]
}

func brandPersonality(dominant domain.PersonaScore, tokens []string) string {
	traits := map[string]string{
		PersonaYoungCasual:  "playful and approachable",
		PersonaPremium:      "refined and aspirational",
		PersonaProfessional: "authoritative and dependable",
		PersonaEco:          "principled and transparent",
	}
	trait, ok := traits[dominant.Label]
	if !ok || len(tokens) == 0 {
		return "neutral and understated"
	}
	return fmt.Sprintf("%s, oriented toward a %s audience", trait, dominant.Label)
}

// seoKeywords ranks terms drawn from product titles and navigation
// labels, the parts of a storefront that drive search intent.
func seoKeywords(cfg Config, profile *domain.BrandProfile) []string {
	var sb strings.Builder
	for _, p := range profile.ProductCatalog {
		sb.WriteString(p.Title)
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(p.Tags, " "))
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.Join(profile.Navigation, " "))
	if profile.BrandName != "" {
		sb.WriteByte(' ')
		sb.WriteString(profile.BrandName)
	}
	return topTerms(tokenize(sb.String()), cfg.KeywordCount, 3)
}

// improvements flags profile gaps a merchant could act on.
func improvements(profile *domain.BrandProfile) []string {
	var out []string
	if len(profile.FAQs) == 0 {
		out = append(out, "Add an FAQ section to answer common pre-purchase questions")
	}
	if len(profile.SocialHandles) < 2 {
		out = append(out, "Expand social media presence beyond the current channels")
	}
	if profile.ContactChannels.Empty() {
		out = append(out, "Publish clear contact details to build customer trust")
	}
	if _, ok := profile.Policies[domain.PolicyReturns]; !ok {
		out = append(out, "Publish a returns policy; its absence deters first-time buyers")
	}
	if len(strings.Fields(profile.BrandNarrative)) < 50 {
		out = append(out, "Strengthen the brand story with a richer about page")
	}
	return out
}

// advantages lists strengths already present in the profile.
func advantages(profile *domain.BrandProfile) []string {
	var out []string
	if len(profile.ProductCatalog) >= 10 {
		out = append(out, "Broad product catalog gives shoppers meaningful choice")
	}
	if len(profile.Policies) >= 3 {
		out = append(out, "Comprehensive policy coverage signals an established operation")
	}
	if len(profile.SocialHandles) >= 3 {
		out = append(out, "Multi-channel social presence supports discovery and retargeting")
	}
	if len(profile.FAQs) >= 5 {
		out = append(out, "Thorough FAQ coverage reduces support load and purchase friction")
	}
	if len(strings.Fields(profile.BrandNarrative)) >= 100 {
		out = append(out, "Well-developed brand narrative differentiates the storefront")
	}
	return out
}
