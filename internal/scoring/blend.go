package scoring

import "context"

// BlendedRelevanceCutoff is the 0-100 blended score at or above which a
// solicitation is flagged as relevant.
const BlendedRelevanceCutoff = 40.0

// SupplementaryScorer is an optional scoring method the blended scorer can
// consult in addition to keywords: a semantic-similarity service, a hosted
// language model, and so on. Score returns a 0-100 score and a short label
// describing the match.
type SupplementaryScorer interface {
	Name() string
	Score(ctx context.Context, text string) (float64, string, error)
}

// MethodScore is one method's contribution to a blended result.
type MethodScore struct {
	Method string
	Score  float64
	Label  string
}

// BlendedResult is the outcome of multi-method relevance scoring.
type BlendedResult struct {
	FinalScore float64
	Relevant   bool
	Category   string
	Methods    []MethodScore
	Matches    []Match
}

// BlendedScorer combines keyword scoring with whatever supplementary methods
// are configured. A method that is absent or fails only narrows the blend to
// the methods that did answer; it never fails the call.
type BlendedScorer struct {
	keyword       *TextScorer
	supplementary []SupplementaryScorer
}

// NewBlendedScorer builds a blended scorer over the given table. The keyword
// leg uses diminishing returns and 0-100 normalization, unlike the plain
// threshold classifier. A zero normalizeDivisor means
// DefaultNormalizeDivisor.
func NewBlendedScorer(table *KeywordTable, normalizeDivisor float64, supplementary ...SupplementaryScorer) *BlendedScorer {
	return &BlendedScorer{
		keyword: NewTextScorer(table, ScorerOptions{
			DiminishingReturns: true,
			NormalizeDivisor:   normalizeDivisor,
		}),
		supplementary: supplementary,
	}
}

// Score runs every available method over the combined title and description
// and blends the results: keyword alone, 0.4/0.6 with one supplementary
// method, 0.3/0.35/0.35 with two.
func (b *BlendedScorer) Score(ctx context.Context, title, description string) BlendedResult {
	text := title + " " + description
	breakdown := b.keyword.Score(text)
	kwScore := b.keyword.Normalized(breakdown.Total)

	result := BlendedResult{
		Category: breakdown.Category,
		Matches:  breakdown.Matches,
		Methods:  []MethodScore{{Method: "keyword", Score: kwScore}},
	}

	scores := []float64{kwScore}
	for _, s := range b.supplementary {
		score, label, err := s.Score(ctx, text)
		if err != nil {
			continue
		}
		scores = append(scores, score)
		result.Methods = append(result.Methods, MethodScore{
			Method: s.Name(),
			Score:  score,
			Label:  label,
		})
	}

	switch len(scores) {
	case 1:
		result.FinalScore = scores[0]
	case 2:
		result.FinalScore = scores[0]*0.4 + scores[1]*0.6
	default:
		result.FinalScore = scores[0]*0.3 + scores[1]*0.35 + scores[2]*0.35
	}

	result.Relevant = result.FinalScore >= BlendedRelevanceCutoff
	return result
}
