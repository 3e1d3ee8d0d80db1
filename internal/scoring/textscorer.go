package scoring

import (
	"sort"
	"strings"
)

// DefaultNormalizeDivisor is the raw score that maps to a normalized 100.
// A typical high-relevance article scores 15-25 raw; the value is an
// empirical calibration constant, not a statistical one.
const DefaultNormalizeDivisor = 25.0

// ScorerOptions tunes a TextScorer for one of its two variants.
type ScorerOptions struct {
	// DiminishingReturns scales repeated occurrences of a phrase
	// sub-linearly instead of counting presence once.
	DiminishingReturns bool
	// NormalizeDivisor is the raw score mapped to 100 by Normalized.
	// Zero means DefaultNormalizeDivisor.
	NormalizeDivisor float64
}

// Match records one keyword's contribution to a score.
type Match struct {
	Keyword      string
	Category     string
	Weight       float64
	Count        int
	Contribution float64
}

// Breakdown is the result of scoring one piece of text. It is recomputed per
// call and never persisted.
type Breakdown struct {
	Total    float64
	Matches  []Match
	Category string
}

// TextScorer scores free text against a keyword table. Scorers are stateless
// and safe for concurrent use.
type TextScorer struct {
	table *KeywordTable
	opts  ScorerOptions
}

// NewTextScorer builds a scorer over the given table.
func NewTextScorer(table *KeywordTable, opts ScorerOptions) *TextScorer {
	if opts.NormalizeDivisor == 0 {
		opts.NormalizeDivisor = DefaultNormalizeDivisor
	}
	return &TextScorer{table: table, opts: opts}
}

// Score computes the weighted keyword score of text. Matching is
// case-insensitive and substring-based; occurrence counts are
// non-overlapping. Empty or all-whitespace text scores zero.
func (s *TextScorer) Score(text string) Breakdown {
	if strings.TrimSpace(text) == "" {
		return Breakdown{}
	}
	lower := strings.ToLower(text)

	var (
		matches        []Match
		total          float64
		categoryTotals = map[string]float64{}
		categoryOrder  []string
	)

	for _, e := range s.table.Entries() {
		count := strings.Count(lower, e.Phrase)
		if count == 0 {
			continue
		}

		contribution := e.Weight
		if s.opts.DiminishingReturns {
			contribution = e.Weight * (1 + 0.2*float64(count-1))
		}

		total += contribution
		matches = append(matches, Match{
			Keyword:      e.Phrase,
			Category:     e.Category,
			Weight:       e.Weight,
			Count:        count,
			Contribution: contribution,
		})

		if _, seen := categoryTotals[e.Category]; !seen {
			categoryOrder = append(categoryOrder, e.Category)
		}
		categoryTotals[e.Category] += contribution
	}

	// Most impactful matches first.
	sort.SliceStable(matches, func(i, j int) bool {
		return abs(matches[i].Contribution) > abs(matches[j].Contribution)
	})

	// Highest category total wins; ties go to the category seen first in
	// table order, which is descending absolute weight.
	var category string
	best := 0.0
	for _, c := range categoryOrder {
		if category == "" || categoryTotals[c] > best {
			category = c
			best = categoryTotals[c]
		}
	}

	return Breakdown{Total: total, Matches: matches, Category: category}
}

// Normalized maps a raw total score onto the 0-100 scale, clamped at both
// ends.
func (s *TextScorer) Normalized(total float64) float64 {
	return clamp((total/s.opts.NormalizeDivisor)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
