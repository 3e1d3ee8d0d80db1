package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/output"
	"github.com/govradar/govradar/internal/scoring"
)

var opportunitiesCmd = &cobra.Command{
	Use:     "opportunities",
	Aliases: []string{"opps"},
	Short:   "Work with the opportunity pipeline",
}

var oppListCmd = &cobra.Command{
	Use:   "list",
	Short: "List opportunities ranked by heat",
	Long: `List opportunities, hottest first.

Examples:
  govradar opportunities list
  govradar opportunities list --priority urgent
  govradar opportunities list --status new --min-heat 70
  govradar opportunities list -o json`,
	RunE: runOppList,
}

var oppShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one opportunity with its score breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runOppShow,
}

var oppStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Move an opportunity through the sales workflow",
	Long: `Set an opportunity's status. Valid statuses:
  new, researching, contacted, in_discussion, closed_won, closed_lost`,
	Args: cobra.ExactArgs(2),
	RunE: runOppStatus,
}

var (
	oppListStatus   string
	oppListPriority string
	oppListMinHeat  float64
	oppListLimit    int
)

func init() {
	rootCmd.AddCommand(opportunitiesCmd)
	opportunitiesCmd.AddCommand(oppListCmd)
	opportunitiesCmd.AddCommand(oppShowCmd)
	opportunitiesCmd.AddCommand(oppStatusCmd)

	oppListCmd.Flags().StringVar(&oppListStatus, "status", "", "Filter by status")
	oppListCmd.Flags().StringVar(&oppListPriority, "priority", "", "Filter by priority (urgent, high, medium, low)")
	oppListCmd.Flags().Float64Var(&oppListMinHeat, "min-heat", 0, "Minimum heat score")
	oppListCmd.Flags().IntVar(&oppListLimit, "limit", 0, "Maximum number of results")
}

var validStatuses = []database.OpportunityStatus{
	database.StatusNew, database.StatusResearching, database.StatusContacted,
	database.StatusInDiscussion, database.StatusClosedWon, database.StatusClosedLost,
}

func parseStatus(s string) (database.OpportunityStatus, error) {
	for _, status := range validStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status: %s", s)
}

func runOppList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	filter := database.OpportunityFilter{Limit: oppListLimit}
	if oppListStatus != "" {
		status, err := parseStatus(oppListStatus)
		if err != nil {
			return err
		}
		filter.Status = &status
	}
	if oppListPriority != "" {
		priority := scoring.Priority(oppListPriority)
		filter.Priority = &priority
	}
	if oppListMinHeat > 0 {
		filter.MinHeatScore = &oppListMinHeat
	}

	opps, err := e.db.ListOpportunities(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list opportunities: %w", err)
	}
	return output.Output(outputFmt, opps)
}

func runOppShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	eng, err := e.engine(ctx)
	if err != nil {
		return err
	}

	detail, err := eng.OpportunityDetail(ctx, args[0])
	if err != nil {
		return err
	}
	return output.Output(outputFmt, detail)
}

func runOppStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	if err := e.db.SetOpportunityStatus(ctx, args[0], status); err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	if err := e.db.AddActivity(ctx, args[0], "status_changed", "Status set to "+string(status)); err != nil {
		return err
	}

	fmt.Printf("Opportunity %s is now %s\n", args[0], status)
	return nil
}
