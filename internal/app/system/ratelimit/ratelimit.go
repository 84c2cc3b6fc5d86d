// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces outbound calls to a remote service with a token bucket.
// It is safe for concurrent use. A nil *Limiter never blocks.
type Limiter struct {
	lim *rate.Limiter
}

// New creates a limiter allowing limit calls per duration, with bursts of up
// to burst calls. A non-positive limit returns nil (no limiting).
func New(limit int, duration time.Duration, burst int) *Limiter {
	if limit <= 0 || duration <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	every := duration / time.Duration(limit)
	return &Limiter{lim: rate.NewLimiter(rate.Every(every), burst)}
}

// PerMinute is a convenience for New(limit, time.Minute, burst) with a burst
// of a tenth of the limit (at least one).
func PerMinute(limit int) *Limiter {
	return New(limit, time.Minute, max(limit/10, 1))
}

// Wait blocks until a call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.lim.Wait(ctx)
}
