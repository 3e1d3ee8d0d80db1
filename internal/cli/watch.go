package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run discovery and rescoring on a schedule",
	Long: `Run in the foreground, firing a full cycle on the configured cron
schedule: news discovery, portal scanning, then a heat rescore.
Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// cycle is one scheduled pass over all discovery sources.
type cycle struct {
	e *env
}

func (c *cycle) RunCycle(ctx context.Context) error {
	scanner, err := c.e.scanner(ctx)
	if err != nil {
		return err
	}
	if _, err := scanner.Run(ctx, nil); err != nil {
		c.e.log.Error("news discovery failed", "error", err)
	}

	portals, err := c.e.portalScanner(ctx)
	if err != nil {
		return err
	}
	if _, err := portals.Scan(ctx); err != nil {
		c.e.log.Error("portal scan failed", "error", err)
	}

	eng, err := c.e.engine(ctx)
	if err != nil {
		return err
	}
	_, err = eng.RecalculateAll(ctx)
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	sched, err := scheduler.New(e.cfg.Schedule.Cron, &cycle{e: e}, e.log)
	if err != nil {
		return err
	}

	e.log.Info("watching", "cron", e.cfg.Schedule.Cron)
	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
