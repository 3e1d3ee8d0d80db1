package scheduler

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

type nopRunner struct{}

func (nopRunner) RunCycle(ctx context.Context) error { return nil }

func TestNew(t *testing.T) {
	if _, err := New("0 6 * * *", nopRunner{}, slog.Default()); err != nil {
		t.Errorf("valid expression rejected: %v", err)
	}

	for _, expr := range []string{"", "not a cron", "61 6 * * *", "0 6 * *"} {
		if _, err := New(expr, nopRunner{}, slog.Default()); err == nil {
			t.Errorf("expression %q accepted", expr)
		}
	}
}

func TestNext(t *testing.T) {
	s, err := New("0 6 * * *", nopRunner{}, slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	now := time.Date(2026, 3, 15, 7, 0, 0, 0, time.UTC)
	next := s.Next(now)
	want := time.Date(2026, 3, 16, 6, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}

	// before today's fire time the cycle is still due today
	now = time.Date(2026, 3, 15, 5, 0, 0, 0, time.UTC)
	next = s.Next(now)
	want = time.Date(2026, 3, 15, 6, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestStartCancel(t *testing.T) {
	s, err := New("0 6 * * *", nopRunner{}, slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not stop on cancel")
	}
}
