// Package scheduler runs discovery and rescoring cycles on a cron
// schedule.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner executes one full scheduled cycle: news discovery, portal
// scanning, and heat recomputation.
type Runner interface {
	RunCycle(ctx context.Context) error
}

// Scheduler fires a Runner on a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
type Scheduler struct {
	sched cron.Schedule
	run   Runner
	log   *slog.Logger
}

// New parses the cron expression and wires a scheduler.
func New(expr string, run Runner, log *slog.Logger) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{sched: sched, run: run, log: log}, nil
}

// Next returns the next fire time after now.
func (s *Scheduler) Next(now time.Time) time.Time {
	return s.sched.Next(now)
}

// Start blocks, firing the runner at each scheduled time until the
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	for {
		now := time.Now()
		next := s.sched.Next(now)
		s.log.Info("next cycle scheduled", "at", next.Format("Mon Jan 2 15:04"), "in", next.Sub(now).Round(time.Minute).String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(next.Sub(now)):
		}

		if err := s.run.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("cycle failed", "error", err)
		}
	}
}
