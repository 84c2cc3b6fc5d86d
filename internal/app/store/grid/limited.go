// internal/app/store/grid/limited.go
package grid

import (
	"context"

	"github.com/dalemusser/progressrelay/internal/app/system/ratelimit"
)

// Limited wraps a backend so every read and write first waits on lim.
// Ping and Close are not paced. A nil lim returns b unchanged.
func Limited(b Backend, lim *ratelimit.Limiter) Backend {
	if lim == nil {
		return b
	}
	return &limited{Backend: b, lim: lim}
}

type limited struct {
	Backend
	lim *ratelimit.Limiter
}

func (l *limited) ReadRow(ctx context.Context, row int) ([]string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		return nil, err
	}
	return l.Backend.ReadRow(ctx, row)
}

func (l *limited) ReadColumn(ctx context.Context, col int) ([]string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		return nil, err
	}
	return l.Backend.ReadColumn(ctx, col)
}

func (l *limited) ReadCell(ctx context.Context, row, col int) (string, error) {
	if err := l.lim.Wait(ctx); err != nil {
		return "", err
	}
	return l.Backend.ReadCell(ctx, row, col)
}

func (l *limited) WriteCell(ctx context.Context, row, col int, value any) error {
	if err := l.lim.Wait(ctx); err != nil {
		return err
	}
	return l.Backend.WriteCell(ctx, row, col, value)
}
