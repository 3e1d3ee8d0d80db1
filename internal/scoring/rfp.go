package scoring

// RFPRelevanceThreshold is the raw weighted score at or above which a
// solicitation is flagged as relevant.
const RFPRelevanceThreshold = 2.0

// RFPClassifier decides whether a solicitation is worth pursuing. Unlike the
// news scorer it sums each matched keyword's weight once, with no
// diminishing-returns adjustment for repeat occurrences; the default
// threshold is tuned for single-count sums.
type RFPClassifier struct {
	scorer    *TextScorer
	threshold float64
}

// NewRFPClassifier builds a classifier over the given table. A zero
// threshold means RFPRelevanceThreshold.
func NewRFPClassifier(table *KeywordTable, threshold float64) *RFPClassifier {
	if threshold == 0 {
		threshold = RFPRelevanceThreshold
	}
	return &RFPClassifier{
		scorer:    NewTextScorer(table, ScorerOptions{DiminishingReturns: false}),
		threshold: threshold,
	}
}

// Classify scores the solicitation title and description together and
// returns the relevance decision, the raw weighted score, and the inferred
// category ("" when nothing matched).
func (c *RFPClassifier) Classify(title, description string) (bool, float64, string) {
	b := c.scorer.Score(title + " " + description)
	return b.Total >= c.threshold, b.Total, b.Category
}

// Breakdown exposes the per-keyword match detail for a solicitation.
func (c *RFPClassifier) Breakdown(title, description string) Breakdown {
	return c.scorer.Score(title + " " + description)
}
