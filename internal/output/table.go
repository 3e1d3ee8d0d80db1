package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/discovery"
	"github.com/govradar/govradar/internal/engine"
	"github.com/govradar/govradar/internal/scoring"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Opportunity:
		return opportunitiesTable(w, v)
	case *engine.OpportunityDetail:
		return opportunityDetail(w, v)
	case []database.RFP:
		return rfpsTable(w, v)
	case []database.Entity:
		return entitiesTable(w, v)
	case []discovery.Discovered:
		return discoveredTable(w, v)
	case *discovery.PortalStats:
		return portalStatsTable(w, v)
	case *engine.RecalcResult:
		return recalcTable(w, v)
	case *engine.RescoreResult:
		return rescoreTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func opportunitiesTable(w io.Writer, opps []database.Opportunity) error {
	if len(opps) == 0 {
		fmt.Fprintln(w, "No opportunities found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HEAT\tPRIORITY\tSTATUS\tISSUE\tTITLE\tLAST ACTIVITY")
	fmt.Fprintln(tw, "----\t--------\t------\t-----\t-----\t-------------")

	for _, o := range opps {
		issue := ""
		if o.IssueType != nil {
			issue = *o.IssueType
		}
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%s\t%s\n",
			o.HeatScore,
			o.Priority,
			o.Status,
			issue,
			truncate(o.Title, 40),
			formatLastActivity(o.DaysSinceActivity()),
		)
	}

	return tw.Flush()
}

func opportunityDetail(w io.Writer, d *engine.OpportunityDetail) error {
	o := d.Opportunity

	fmt.Fprintf(w, "Title:       %s\n", o.Title)
	if d.Entity != nil {
		fmt.Fprintf(w, "Entity:      %s (%s, %s)\n", d.Entity.Name, d.Entity.EntityType, d.Entity.State)
	}
	fmt.Fprintf(w, "Heat:        %.1f (%s)\n", o.HeatScore, o.Priority)
	fmt.Fprintf(w, "Status:      %s\n", o.Status)
	if o.IssueType != nil {
		fmt.Fprintf(w, "Issue:       %s\n", *o.IssueType)
	}
	fmt.Fprintf(w, "Detected:    %s\n", o.FirstDetected.Format("Jan 2, 2006"))
	fmt.Fprintf(w, "Activity:    %s\n", formatLastActivity(o.DaysSinceActivity()))

	if o.Summary != nil && *o.Summary != "" {
		fmt.Fprintf(w, "\nSummary\n%s\n%s\n", strings.Repeat("-", 40), *o.Summary)
	}

	fmt.Fprintf(w, "\nScore Breakdown\n%s\n", strings.Repeat("-", 40))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FACTOR\tRAW\tWEIGHT\tWEIGHTED")
	for _, f := range d.Factors {
		fmt.Fprintf(tw, "%s\t%.1f\t%.2f\t%.1f\n", f.Name, f.Raw, f.Weight, f.Weighted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(d.Articles) > 0 {
		fmt.Fprintf(w, "\nLinked Articles (%d)\n%s\n", len(d.Articles), strings.Repeat("-", 40))
		for _, a := range d.Articles {
			fmt.Fprintf(w, "  %s\n    %s\n", truncate(a.Title, 70), a.URL)
		}
	}

	if o.AttackBrief != nil && *o.AttackBrief != "" {
		fmt.Fprintf(w, "\n%s\n", *o.AttackBrief)
	}

	return nil
}

func rfpsTable(w io.Writer, rfps []database.RFP) error {
	if len(rfps) == 0 {
		fmt.Fprintln(w, "No solicitations found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tRELEVANT\tSTATUS\tCATEGORY\tTITLE\tDUE")
	fmt.Fprintln(tw, "-----\t--------\t------\t--------\t-----\t---")

	for _, r := range rfps {
		relevant := "no"
		if r.IsRelevant {
			relevant = "yes"
		}
		category := ""
		if r.Category != nil {
			category = *r.Category
		}
		due := ""
		if r.DueDate != nil {
			due = r.DueDate.Format("Jan 2")
		}
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%s\t%s\n",
			r.RelevanceScore, relevant, r.Status, category, truncate(r.Title, 45), due)
	}

	return tw.Flush()
}

func entitiesTable(w io.Writer, entities []database.Entity) error {
	if len(entities) == 0 {
		fmt.Fprintln(w, "No entities found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tSTATE\tPOPULATION\tBUDGET")
	fmt.Fprintln(tw, "----\t----\t-----\t----------\t------")

	for _, e := range entities {
		pop := ""
		if e.Population != nil {
			pop = fmt.Sprintf("%d", *e.Population)
		}
		budget := ""
		if e.AnnualBudget != nil {
			budget = fmt.Sprintf("$%.0fM", *e.AnnualBudget/1e6)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", truncate(e.Name, 30), e.EntityType, e.State, pop, budget)
	}

	return tw.Flush()
}

func discoveredTable(w io.Writer, results []discovery.Discovered) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No opportunities discovered.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HEAT\tENTITY\tTYPE\tISSUE\tTITLE\tNEW")
	fmt.Fprintln(tw, "----\t------\t----\t-----\t-----\t---")

	for _, d := range results {
		isNew := ""
		if d.Created {
			isNew = "*"
		}
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t%s\t%s\t%s\n",
			d.HeatScore, d.EntityName, d.EntityType, d.IssueType, truncate(d.Title, 40), isNew)
	}

	return tw.Flush()
}

func portalStatsTable(w io.Writer, s *discovery.PortalStats) error {
	fmt.Fprintln(w, "Portal Scan Results")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total found:       %d\n", s.TotalFound)
	fmt.Fprintf(w, "Relevant:          %d\n", s.RelevantFound)
	fmt.Fprintf(w, "Saved:             %d\n", s.Saved)
	for portal, count := range s.ByPortal {
		fmt.Fprintf(w, "  %-16s %d\n", portal+":", count)
	}
	return nil
}

func recalcTable(w io.Writer, r *engine.RecalcResult) error {
	fmt.Fprintf(w, "Recalculated %d opportunities, %d changed\n", r.Visited, r.Updated)
	for _, err := range r.Errors {
		fmt.Fprintf(w, "  error: %v\n", err)
	}
	return nil
}

func rescoreTable(w io.Writer, r *engine.RescoreResult) error {
	fmt.Fprintf(w, "Rescored %d of %d solicitations\n", r.Rescored, r.Total)
	fmt.Fprintf(w, "  high relevance:   %d\n", r.HighRelevance)
	fmt.Fprintf(w, "  medium relevance: %d\n", r.MediumRelevance)
	fmt.Fprintf(w, "  low relevance:    %d\n", r.LowRelevance)
	for _, err := range r.Errors {
		fmt.Fprintf(w, "  error: %v\n", err)
	}
	return nil
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Pipeline Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total opportunities:    %d\n", s.TotalOpportunities)

	for _, p := range []scoring.Priority{scoring.PriorityUrgent, scoring.PriorityHigh, scoring.PriorityMedium, scoring.PriorityLow} {
		if n, ok := s.ByPriority[p]; ok {
			fmt.Fprintf(w, "  %-20s  %d\n", string(p)+":", n)
		}
	}
	if s.AverageHeat > 0 {
		fmt.Fprintf(w, "Average heat:           %.1f\n", s.AverageHeat)
	}
	fmt.Fprintf(w, "Total entities:         %d\n", s.TotalEntities)
	fmt.Fprintf(w, "Total solicitations:    %d\n", s.TotalRFPs)
	fmt.Fprintf(w, "Relevant solicitations: %d\n", s.RelevantRFPs)

	for _, st := range []database.OpportunityStatus{
		database.StatusNew, database.StatusResearching, database.StatusContacted,
		database.StatusInDiscussion, database.StatusClosedWon, database.StatusClosedLost,
	} {
		if n, ok := s.ByStatus[st]; ok {
			fmt.Fprintf(w, "  %-20s  %d\n", string(st)+":", n)
		}
	}

	return nil
}

func formatLastActivity(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
