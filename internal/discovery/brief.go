package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/govradar/govradar/internal/scoring"
)

var talkingPoints = map[string][]string{
	scoring.CategoryProcurement: {
		"Their procurement process has been publicly questioned",
		"A contract oversight system could prevent future bid manipulation",
		"Automated vendor scoring removes human bias from selection",
		"Audit trail provides transparency for public records requests",
	},
	scoring.CategoryAudit: {
		"Audit findings indicate gaps in financial oversight",
		"Our system provides real-time monitoring to catch issues early",
		"Comprehensive reporting simplifies compliance",
		"Reduces risk of future audit findings",
	},
	scoring.CategoryEthics: {
		"Ethics concerns highlight need for transparent processes",
		"Our system creates clear separation between vendors and evaluators",
		"All interactions are logged and auditable",
		"Helps restore public trust through accountability",
	},
	scoring.CategoryBudget: {
		"Budget pressures make efficient spending critical",
		"Our system identifies cost-saving opportunities",
		"Prevents wasteful spending through better oversight",
		"ROI through reduced change orders and overruns",
	},
	scoring.CategoryLegal: {
		"Legal exposure creates urgency for better controls",
		"Documented processes reduce liability",
		"Proactive monitoring prevents future legal issues",
		"Shows good faith effort at reform",
	},
}

// AttackBrief renders markdown talking points for outreach on a detected
// opportunity. The issue summary falls back to the article title when no
// summary text is available.
func AttackBrief(title, summary string, matches []scoring.Match, entityName, issueType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Opportunity: %s\n", entityName)
	issue := summary
	if issue == "" {
		issue = title
	}
	fmt.Fprintf(&b, "\n### Issue Summary\n%s\n", issue)

	b.WriteString("\n### Key Talking Points\n")
	for _, point := range talkingPoints[issueType] {
		fmt.Fprintf(&b, "- %s\n", point)
	}

	if len(matches) > 0 {
		b.WriteString("\n### Keywords Detected\n")
		top := make([]scoring.Match, len(matches))
		copy(top, matches)
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].Contribution > top[j].Contribution
		})
		if len(top) > 5 {
			top = top[:5]
		}
		for _, m := range top {
			fmt.Fprintf(&b, "- %s (mentioned %dx)\n", m.Keyword, m.Count)
		}
	}

	b.WriteString("\n### Recommended Approach\n")
	b.WriteString("1. Reference the specific incident in outreach\n")
	b.WriteString("2. Position as a solution to prevent recurrence\n")
	b.WriteString("3. Emphasize public accountability and transparency\n")
	b.WriteString("4. Offer a demo focused on their specific pain points\n")

	return b.String()
}
