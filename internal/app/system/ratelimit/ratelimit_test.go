package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew_DisabledWhenLimitNotPositive(t *testing.T) {
	if l := New(0, time.Minute, 1); l != nil {
		t.Fatal("expected nil limiter for zero limit")
	}
	var l *Limiter
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter Wait: %v", err)
	}
}

func TestWait_BurstThenBlocks(t *testing.T) {
	l := New(60, time.Minute, 3)
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		err := l.Wait(ctx)
		cancel()
		if err != nil {
			t.Fatalf("call %d within burst: %v", i+1, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("call beyond burst did not wait")
	}
}

func TestWait_RespectsContext(t *testing.T) {
	l := New(1, time.Hour, 1)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected Wait to fail while the bucket is empty")
	}

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	var nilLim *Limiter
	if err := nilLim.Wait(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("nil limiter with cancelled ctx: got %v, want context.Canceled", err)
	}
}

func TestPerMinute_MinimumBurst(t *testing.T) {
	l := PerMinute(5)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Errorf("first call: %v", err)
	}
}
