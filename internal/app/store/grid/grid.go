// internal/app/store/grid/grid.go

// Package grid is the narrow interface to the remote progress spreadsheet
// plus its backends (Google Sheets, a local xlsx workbook, a MongoDB
// collection, and an in-memory grid for development and tests).
//
// Rows and columns are 1-based. Reads return 0-based snapshots: index 0 of
// ReadRow holds column 1, index 0 of ReadColumn holds row 1. Snapshots end
// at the last non-empty cell a backend knows about; callers must treat any
// index past the end as blank.
package grid

import (
	"context"
	"fmt"
)

// Grid is the set of operations the progress recorder needs.
type Grid interface {
	ReadRow(ctx context.Context, row int) ([]string, error)
	ReadColumn(ctx context.Context, col int) ([]string, error)
	ReadCell(ctx context.Context, row, col int) (string, error)
	// WriteCell replaces the cell's content. Integers are written as numbers
	// where the backend distinguishes them; everything else as text.
	WriteCell(ctx context.Context, row, col int, value any) error
}

// Backend is a Grid with lifecycle hooks used by bootstrap and /health.
type Backend interface {
	Grid
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendSheets = "sheets"
	BackendXLSX   = "xlsx"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

func checkCoords(row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("grid: invalid cell (%d, %d)", row, col)
	}
	return nil
}

// trimTrailing drops trailing empty strings from a snapshot.
func trimTrailing(values []string) []string {
	n := len(values)
	for n > 0 && values[n-1] == "" {
		n--
	}
	return values[:n]
}

// cellText renders a value the way it is stored by text-only backends.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
