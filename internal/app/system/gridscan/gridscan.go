// internal/app/system/gridscan/gridscan.go

// Package gridscan locates cells in the progress grid from raw row and
// column snapshots. It does no I/O; callers read the grid and pass the
// values in, so everything here can be tested against plain slices.
//
// Slices are 0-based snapshots of 1-based spreadsheet rows/columns: index 0
// holds row (or column) 1. A snapshot that is shorter than the region being
// scanned reads as blank cells.
package gridscan

import (
	"strings"

	"github.com/dalemusser/progressrelay/internal/app/system/bucket"
	"github.com/dalemusser/progressrelay/internal/domain/models"
)

// cellAt returns the trimmed value at 1-based index i, or "" if the snapshot
// is too short.
func cellAt(values []string, i int) string {
	if i < 1 || i > len(values) {
		return ""
	}
	return strings.TrimSpace(values[i-1])
}

// FindColumn returns the 1-based column whose tag header equals tagLabel and
// whose date header equals target.DateLabel, scanning left to right from
// firstDataCol. A target label outside window never matches, even if a
// header with that text exists.
func FindColumn(dateRow, tagRow []string, target models.Bucket, tagLabel string, firstDataCol int, window models.DateWindow) (int, bool) {
	month, day, ok := bucket.ParseLabel(target.DateLabel)
	if !ok || !window.Contains(month, day) {
		return 0, false
	}
	wantDate := strings.TrimSpace(target.DateLabel)
	wantTag := strings.TrimSpace(tagLabel)
	if wantTag == "" {
		return 0, false
	}

	last := max(len(dateRow), len(tagRow))
	for col := max(firstDataCol, 1); col <= last; col++ {
		if cellAt(tagRow, col) == wantTag && cellAt(dateRow, col) == wantDate {
			return col, true
		}
	}
	return 0, false
}

// RowMatch is the outcome of a participant lookup.
type RowMatch struct {
	Row      int  // 1-based row of the existing participant; valid when Found
	Found    bool // the name is already in the grid
	InsertAt int  // create mode only: the blank row a new participant goes into
}

// FindRow looks target up in a name-column snapshot starting at firstRow.
//
// In strict mode the whole column is scanned and a miss leaves InsertAt at 0.
// In create mode scanning stops at the first blank cell; a miss reports that
// blank row (or the row just past the end of the snapshot) as InsertAt.
// Names are compared exactly after trimming surrounding whitespace.
func FindRow(names []string, target string, firstRow int, mode models.RowMode) RowMatch {
	want := strings.TrimSpace(target)
	if want == "" {
		return RowMatch{}
	}
	firstRow = max(firstRow, 1)

	if mode == models.RowModeStrict {
		for row := firstRow; row <= len(names); row++ {
			if cellAt(names, row) == want {
				return RowMatch{Row: row, Found: true}
			}
		}
		return RowMatch{}
	}

	row := firstRow
	for ; row <= len(names); row++ {
		name := cellAt(names, row)
		if name == "" {
			break
		}
		if name == want {
			return RowMatch{Row: row, Found: true}
		}
	}
	return RowMatch{InsertAt: row}
}
