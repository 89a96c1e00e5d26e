package analyzer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/storescope/internal/domain"
)

// AnalyzeSentiment scores the profile's text corpus against the
// positive and negative lexicons. It returns ErrEmptyCorpus when the
// profile carries no analyzable text.
func AnalyzeSentiment(cfg Config, profile *domain.BrandProfile) (*domain.SentimentReport, error) {
	corpus := profile.Corpus()
	if strings.TrimSpace(corpus) == "" {
		return nil, ErrEmptyCorpus
	}

	tokens := tokenize(corpus)
	var pos, neg int
	for _, tok := range tokens {
		if positiveTerms[tok] {
			pos++
		}
		if negativeTerms[tok] {
			neg++
		}
	}

	polarity := 0.0
	if scored := pos + neg; scored > 0 {
		polarity = float64(pos-neg) / float64(scored)
	}

	posPct, negPct, neuPct := sentimentSplit(polarity)

	return &domain.SentimentReport{
		ID:          uuid.NewString(),
		Polarity:    polarity,
		PositivePct: posPct,
		NegativePct: negPct,
		NeutralPct:  neuPct,
		KeyThemes:   topTerms(tokens, cfg.ThemeCount, 4),
		Confidence:  sentimentConfidence(cfg, profile, len(tokens)),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// sentimentSplit derives rough positive/negative/neutral percentages
// from the polarity score. The splits are heuristic approximations of
// how brand copy with that polarity tends to read, not token counts.
func sentimentSplit(polarity float64) (pos, neg, neu float64) {
	switch {
	case polarity > 0.1:
		pos = 60 + polarity*30
		neg = 20 - polarity*15
	case polarity < -0.1:
		pos = 20 + polarity*15
		neg = 60 - polarity*30
	default:
		pos = 40
		neg = 30
	}
	neu = 100 - pos - neg
	return pos, neg, neu
}

// sentimentConfidence grows with corpus length and shrinks when the
// profile was assembled from fewer source fields than the configured
// minimum.
func sentimentConfidence(cfg Config, profile *domain.BrandProfile, tokens int) float64 {
	conf := clamp01(float64(tokens) / 400)
	if min := cfg.MinCorpusFields; min > 0 {
		if fields := profile.SourceFieldCount(); fields < min {
			conf *= float64(fields) / float64(min)
		}
	}
	return clamp01(conf)
}
