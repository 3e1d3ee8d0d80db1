package scoring

import (
	"math"
	"time"
)

// Priority is the coarse classification of a heat score.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Heat score factor weights. They sum to 1.0.
const (
	weightKeyword  = 0.35
	weightRecency  = 0.25
	weightArticles = 0.15
	weightSeverity = 0.15
	weightEntity   = 0.10
)

// Sub-score defaults when the underlying input is absent entirely.
const (
	defaultRecencyScore    = 50.0
	defaultEntitySizeScore = 50.0
)

// severityMultipliers scale the severity base of 70 per issue category.
var severityMultipliers = map[string]float64{
	CategoryLegal:       1.5,
	CategoryProcurement: 1.3,
	CategoryEthics:      1.2,
	CategoryAudit:       1.1,
	CategoryBudget:      1.0,
}

// priorityThresholds is checked in descending order by PriorityFor.
var priorityThresholds = []struct {
	priority Priority
	min      float64
}{
	{PriorityUrgent, 85},
	{PriorityHigh, 70},
	{PriorityMedium, 40},
}

// EntitySize carries the inputs of the entity-size sub-score.
type EntitySize struct {
	Population   int64
	AnnualBudget float64
}

// HeatInput is everything the aggregation needs for one opportunity. The
// keyword score is the cached normalized score attached at creation; it is
// not recomputed from raw text on each pass.
type HeatInput struct {
	KeywordScore  float64
	FirstDetected time.Time
	ArticleCount  int
	IssueType     string
	Entity        *EntitySize
}

// RecencyScore maps the age of an opportunity onto 0-100. A zero timestamp
// scores the default of 50.
func RecencyScore(firstDetected, now time.Time) float64 {
	if firstDetected.IsZero() {
		return defaultRecencyScore
	}
	days := int(now.Sub(firstDetected).Hours() / 24)
	switch {
	case days <= 7:
		return 100
	case days <= 14:
		return 90
	case days <= 30:
		return 75
	case days <= 60:
		return 50
	case days <= 90:
		return 30
	default:
		return 10
	}
}

// ArticleVolumeScore maps linked-article count onto 0-100. More coverage
// means a hotter lead.
func ArticleVolumeScore(count int) float64 {
	switch {
	case count >= 10:
		return 100
	case count >= 5:
		return 80
	case count >= 3:
		return 60
	case count >= 2:
		return 40
	default:
		return 20
	}
}

// SeverityScore maps an issue category onto 0-100. Unknown categories score
// the base of 70.
func SeverityScore(issueType string) float64 {
	multiplier, ok := severityMultipliers[issueType]
	if !ok {
		multiplier = 1.0
	}
	return math.Min(100, 70*multiplier)
}

// EntitySizeScore maps an entity's population and annual budget onto 0-100.
// Larger entities mean larger contracts. When both inputs are available the
// score is their mean; without a budget the population score stands alone.
// An entity with zero population and zero budget scores 20 (the population
// floor); a missing entity record defaults to 50 in CalculateHeat instead.
func EntitySizeScore(e EntitySize) float64 {
	var popScore float64
	switch {
	case e.Population >= 500000:
		popScore = 100
	case e.Population >= 200000:
		popScore = 80
	case e.Population >= 100000:
		popScore = 60
	case e.Population >= 50000:
		popScore = 40
	default:
		popScore = 20
	}

	var budgetScore float64
	switch {
	case e.AnnualBudget >= 1_000_000_000:
		budgetScore = 100
	case e.AnnualBudget >= 500_000_000:
		budgetScore = 80
	case e.AnnualBudget >= 100_000_000:
		budgetScore = 60
	case e.AnnualBudget > 0:
		budgetScore = 40
	default:
		budgetScore = 0
	}

	if budgetScore > 0 && popScore > 0 {
		return (popScore + budgetScore) / 2
	}
	if budgetScore > 0 {
		return budgetScore
	}
	return popScore
}

// CalculateHeat fuses the five factor scores into one 0-100 heat score,
// rounded to one decimal place.
func CalculateHeat(in HeatInput, now time.Time) float64 {
	entityScore := defaultEntitySizeScore
	if in.Entity != nil {
		entityScore = EntitySizeScore(*in.Entity)
	}

	heat := in.KeywordScore*weightKeyword +
		RecencyScore(in.FirstDetected, now)*weightRecency +
		ArticleVolumeScore(in.ArticleCount)*weightArticles +
		SeverityScore(in.IssueType)*weightSeverity +
		entityScore*weightEntity

	return math.Round(clamp(heat, 0, 100)*10) / 10
}

// PriorityFor classifies a heat score. It is a pure function; callers must
// persist the result atomically with the score it was derived from.
func PriorityFor(heat float64) Priority {
	for _, t := range priorityThresholds {
		if heat >= t.min {
			return t.priority
		}
	}
	return PriorityLow
}

// HeatFactor is one row of a heat score explanation.
type HeatFactor struct {
	Name     string
	Raw      float64
	Weight   float64
	Weighted float64
}

// HeatFactors returns the per-factor detail behind CalculateHeat, for
// display alongside an opportunity.
func HeatFactors(in HeatInput, now time.Time) []HeatFactor {
	entityScore := defaultEntitySizeScore
	if in.Entity != nil {
		entityScore = EntitySizeScore(*in.Entity)
	}

	factors := []HeatFactor{
		{Name: "keyword_score", Raw: in.KeywordScore, Weight: weightKeyword},
		{Name: "recency", Raw: RecencyScore(in.FirstDetected, now), Weight: weightRecency},
		{Name: "article_volume", Raw: ArticleVolumeScore(in.ArticleCount), Weight: weightArticles},
		{Name: "severity", Raw: SeverityScore(in.IssueType), Weight: weightSeverity},
		{Name: "entity_size", Raw: entityScore, Weight: weightEntity},
	}
	for i := range factors {
		factors[i].Weighted = factors[i].Raw * factors[i].Weight
	}
	return factors
}
