package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pipeline statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	stats, err := e.db.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}
	return output.Output(outputFmt, stats)
}
