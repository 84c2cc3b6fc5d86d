// internal/app/store/grid/memory.go
package grid

import (
	"context"
	"sync"
)

type cellKey struct{ row, col int }

// Memory is a process-local grid. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	cells  map[cellKey]string
	writes int
}

// NewMemory returns an empty in-memory grid.
func NewMemory() *Memory {
	return &Memory{cells: make(map[cellKey]string)}
}

// SetRow fills row starting at column 1. Empty strings clear cells.
func (m *Memory) SetRow(row int, values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range values {
		m.set(row, i+1, v)
	}
}

// SetColumn fills col starting at row 1. Empty strings clear cells.
func (m *Memory) SetColumn(col int, values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range values {
		m.set(i+1, col, v)
	}
}

func (m *Memory) set(row, col int, v string) {
	if v == "" {
		delete(m.cells, cellKey{row, col})
		return
	}
	m.cells[cellKey{row, col}] = v
}

// Writes reports how many WriteCell calls succeeded.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Snapshot returns a copy of all non-empty cells keyed by [row, col].
func (m *Memory) Snapshot() map[[2]int]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[[2]int]string, len(m.cells))
	for k, v := range m.cells {
		out[[2]int{k.row, k.col}] = v
	}
	return out
}

func (m *Memory) ReadRow(ctx context.Context, row int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	last := 0
	for k := range m.cells {
		if k.row == row && k.col > last {
			last = k.col
		}
	}
	out := make([]string, last)
	for c := 1; c <= last; c++ {
		out[c-1] = m.cells[cellKey{row, c}]
	}
	return out, nil
}

func (m *Memory) ReadColumn(ctx context.Context, col int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	last := 0
	for k := range m.cells {
		if k.col == col && k.row > last {
			last = k.row
		}
	}
	out := make([]string, last)
	for r := 1; r <= last; r++ {
		out[r-1] = m.cells[cellKey{r, col}]
	}
	return out, nil
}

func (m *Memory) ReadCell(ctx context.Context, row, col int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := checkCoords(row, col); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cells[cellKey{row, col}], nil
}

func (m *Memory) WriteCell(ctx context.Context, row, col int, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkCoords(row, col); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(row, col, cellText(value))
	m.writes++
	return nil
}

func (m *Memory) Name() string                   { return BackendMemory }
func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }
func (m *Memory) Close() error                   { return nil }
