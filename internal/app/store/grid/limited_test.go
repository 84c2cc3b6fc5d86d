package grid

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/progressrelay/internal/app/system/ratelimit"
)

func TestLimited_NilLimiterReturnsBackend(t *testing.T) {
	m := NewMemory()
	if got := Limited(m, nil); got != Backend(m) {
		t.Error("expected the backend itself when no limiter is set")
	}
}

func TestLimited_WaitsBeforeCalls(t *testing.T) {
	m := NewMemory()
	g := Limited(m, ratelimit.New(1, time.Hour, 1))

	if err := g.WriteCell(context.Background(), 1, 1, "a"); err != nil {
		t.Fatalf("first write: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := g.WriteCell(ctx, 1, 2, "b"); err == nil {
		t.Fatal("second write should have been held back by the limiter")
	}
	if m.Writes() != 1 {
		t.Errorf("Writes: got %d, want 1", m.Writes())
	}

	// Ping bypasses the limiter.
	if err := g.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
	if g.Name() != BackendMemory {
		t.Errorf("Name: got %q, want %q", g.Name(), BackendMemory)
	}
}
