package cli

import (
	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/output"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute heat scores for every opportunity",
	Long: `Recompute heat and priority for all opportunities from current
article counts, recency, and entity data. Failures on individual records
are reported without aborting the rest.`,
	RunE: runRescore,
}

func init() {
	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, args []string) error {
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

	result, err := eng.RecalculateAll(ctx)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, result)
}
