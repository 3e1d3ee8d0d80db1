package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/output"
)

var rfpsCmd = &cobra.Command{
	Use:   "rfps",
	Short: "Work with discovered solicitations",
}

var rfpListCmd = &cobra.Command{
	Use:   "list",
	Short: "List solicitations ranked by relevance",
	Long: `List discovered solicitations, most relevant first.

Examples:
  govradar rfps list --relevant
  govradar rfps list --category procurement --limit 20`,
	RunE: runRFPList,
}

var rfpRescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Reclassify every solicitation with the current scoring stack",
	RunE:  runRFPRescore,
}

var (
	rfpListRelevant bool
	rfpListCategory string
	rfpListLimit    int
)

func init() {
	rootCmd.AddCommand(rfpsCmd)
	rfpsCmd.AddCommand(rfpListCmd)
	rfpsCmd.AddCommand(rfpRescoreCmd)

	rfpListCmd.Flags().BoolVar(&rfpListRelevant, "relevant", false, "Only show relevant solicitations")
	rfpListCmd.Flags().StringVar(&rfpListCategory, "category", "", "Filter by category")
	rfpListCmd.Flags().IntVar(&rfpListLimit, "limit", 0, "Maximum number of results")
}

func runRFPList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	filter := database.RFPFilter{
		RelevantOnly: rfpListRelevant,
		Limit:        rfpListLimit,
	}
	if rfpListCategory != "" {
		filter.Category = &rfpListCategory
	}

	rfps, err := e.db.ListRFPs(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list solicitations: %w", err)
	}
	return output.Output(outputFmt, rfps)
}

func runRFPRescore(cmd *cobra.Command, args []string) error {
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

	result, err := eng.RescoreRFPs(ctx)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, result)
}
