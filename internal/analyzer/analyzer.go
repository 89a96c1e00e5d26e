package analyzer

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// Sentinel errors returned by the analyzer suite.
var (
	// ErrEmptyCorpus indicates the profile has no text to analyze.
	ErrEmptyCorpus = errors.New("empty text corpus")

	// ErrInsufficientData indicates the profile lacks the inputs a
	// module needs, such as an empty product catalog for pricing.
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Config holds the tuning knobs shared by the analyzer suite. It is
// built once from configuration and treated as immutable.
type Config struct {
	MinCorpusFields   int
	ThemeCount        int
	KeywordCount      int
	PremiumThreshold  float64
	ValueThreshold    float64
	VarianceTolerance float64
}

var wordPattern = regexp.MustCompile(`[a-z][a-z'-]+`)

// tokenize lowercases text and splits it into word tokens.
func tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// topTerms returns the n most frequent tokens that are not stopwords
// and are at least minLen characters, ordered by descending count with
// alphabetical tie-breaking so results are deterministic.
func topTerms(tokens []string, n, minLen int) []string {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if len(tok) < minLen || stopwords[tok] {
			continue
		}
		counts[tok]++
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
