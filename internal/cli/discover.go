package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/output"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find new opportunities and solicitations",
}

var discoverNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Scan news coverage for procurement controversies",
	Long: `Search news feeds for coverage of procurement problems in Florida
government and turn matches into scored opportunities.

Examples:
  govradar discover news
  govradar discover news --query "Broward County audit"`,
	RunE: runDiscoverNews,
}

var discoverArticleCmd = &cobra.Command{
	Use:   "article <url>",
	Short: "Process a single article URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscoverArticle,
}

var discoverRFPsCmd = &cobra.Command{
	Use:   "rfps",
	Short: "Scan procurement portals for solicitations",
	RunE:  runDiscoverRFPs,
}

var discoverQueries []string

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.AddCommand(discoverNewsCmd)
	discoverCmd.AddCommand(discoverArticleCmd)
	discoverCmd.AddCommand(discoverRFPsCmd)

	discoverNewsCmd.Flags().StringArrayVar(&discoverQueries, "query", nil,
		"news search query (repeatable; default queries used when omitted)")
}

func runDiscoverNews(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	scanner, err := e.scanner(ctx)
	if err != nil {
		return err
	}

	results, err := scanner.Run(ctx, discoverQueries)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, results)
}

func runDiscoverArticle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	scanner, err := e.scanner(ctx)
	if err != nil {
		return err
	}

	results, err := scanner.ProcessArticle(ctx, args[0], "")
	if err != nil {
		return fmt.Errorf("failed to process article: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No opportunity found: article scored below threshold or named no government entity.")
		return nil
	}
	return output.Output(outputFmt, results)
}

func runDiscoverRFPs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	scanner, err := e.portalScanner(ctx)
	if err != nil {
		return err
	}

	stats, err := scanner.Scan(ctx)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, stats)
}
