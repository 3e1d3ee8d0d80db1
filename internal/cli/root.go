package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/classifier"
	"github.com/govradar/govradar/internal/config"
	"github.com/govradar/govradar/internal/database"
	"github.com/govradar/govradar/internal/discovery"
	"github.com/govradar/govradar/internal/engine"
	"github.com/govradar/govradar/internal/scoring"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	verbose    bool
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "govradar",
	Short: "Government procurement opportunity radar",
	Long: `govradar watches Florida government news and procurement portals for
signs that an agency needs better contract oversight.

It provides:
  - News discovery with keyword-based relevance scoring
  - Heat ranking of opportunities by urgency
  - Solicitation tracking across procurement portals
  - Optional semantic and LLM scoring for solicitations`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/govradar/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "govradar", "config.toml")
	}
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("govradar %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// env holds everything a command needs: config, an open database with the
// keyword vocabulary seeded, and a logger.
type env struct {
	cfg *config.Config
	db  *database.DB
	log *slog.Logger
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Seeding is idempotent; existing rows keep any operator edits.
	if err := db.SeedNewsKeywords(ctx, scoring.NewsKeywords().Entries()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed keywords: %w", err)
	}
	if err := db.SeedRFPKeywords(ctx, scoring.RFPKeywords().Entries()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed rfp keywords: %w", err)
	}

	return &env{cfg: cfg, db: db, log: newLogger()}, nil
}

func (e *env) Close() {
	e.db.Close()
}

func (e *env) newsTable(ctx context.Context) (*scoring.KeywordTable, error) {
	entries, err := e.db.LoadNewsKeywords(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.NewKeywordTable(entries)
}

func (e *env) rfpTable(ctx context.Context) (*scoring.KeywordTable, error) {
	entries, err := e.db.LoadRFPKeywords(ctx)
	if err != nil {
		return nil, err
	}
	return scoring.NewKeywordTable(entries)
}

// engine builds the scoring engine, wiring in whichever supplementary
// scorers the config enables.
func (e *env) engine(ctx context.Context) (*engine.Engine, error) {
	table, err := e.rfpTable(ctx)
	if err != nil {
		return nil, err
	}

	var supplementary []scoring.SupplementaryScorer
	if e.cfg.AI.SemanticEnabled {
		supplementary = append(supplementary, classifier.NewSemanticClient(e.cfg.SemanticURL()))
	}
	if e.cfg.AI.LLMEnabled {
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			e.log.Warn("llm scoring enabled but ANTHROPIC_API_KEY is not set; skipping")
		} else {
			supplementary = append(supplementary, classifier.NewLLMScorer(key, e.cfg.AI.LLMModel))
		}
	}

	blender := scoring.NewBlendedScorer(table, e.cfg.Scoring.NormalizeDivisor, supplementary...)
	return engine.New(e.db, blender, e.log), nil
}

func (e *env) scanner(ctx context.Context) (*discovery.Scanner, error) {
	table, err := e.newsTable(ctx)
	if err != nil {
		return nil, err
	}
	eng, err := e.engine(ctx)
	if err != nil {
		return nil, err
	}
	scorer := scoring.NewTextScorer(table, scoring.ScorerOptions{
		DiminishingReturns: true,
		NormalizeDivisor:   e.cfg.Scoring.NormalizeDivisor,
	})
	return discovery.NewScanner(e.db, scorer, eng, e.cfg.Discovery, e.log), nil
}

func (e *env) portalScanner(ctx context.Context) (*discovery.PortalScanner, error) {
	table, err := e.rfpTable(ctx)
	if err != nil {
		return nil, err
	}
	clf := scoring.NewRFPClassifier(table, e.cfg.RFP.RelevanceThreshold)
	return discovery.NewPortalScanner(e.db, clf, e.cfg.RFP, e.cfg.Discovery.Timeout(), e.log), nil
}
