// internal/domain/models/grid.go
package models

import "fmt"

// RowMode selects how a participant row is resolved when the name is not in
// the grid yet.
type RowMode string

const (
	// RowModeStrict never creates rows; an unknown name is reported back.
	RowModeStrict RowMode = "strict"
	// RowModeCreate writes the name into the first blank slot of the name column.
	RowModeCreate RowMode = "create"
)

// ParseRowMode validates a configured row mode.
func ParseRowMode(s string) (RowMode, error) {
	switch RowMode(s) {
	case RowModeStrict, RowModeCreate:
		return RowMode(s), nil
	}
	return "", fmt.Errorf("unknown row mode %q (want %q or %q)", s, RowModeStrict, RowModeCreate)
}

// GridLayout describes where things live in the progress grid. All indexes
// are 1-based, matching spreadsheet row and column numbers.
type GridLayout struct {
	DateRow      int // header row holding date labels ("5/10")
	TagRow       int // header row holding time-tag labels
	NameCol      int // column holding participant names
	FirstDataRow int // first participant row
	FirstDataCol int // first progress column; earlier columns are labels

	MorningLabel string
	EveningLabel string
}

// TagLabel returns the header text used for a time tag.
func (l GridLayout) TagLabel(t TimeTag) string {
	if t == Evening {
		return l.EveningLabel
	}
	return l.MorningLabel
}

// Validate checks that the layout is usable.
func (l GridLayout) Validate() error {
	if l.DateRow < 1 || l.TagRow < 1 || l.NameCol < 1 || l.FirstDataRow < 1 || l.FirstDataCol < 1 {
		return fmt.Errorf("grid layout indexes must be >= 1")
	}
	if l.DateRow == l.TagRow {
		return fmt.Errorf("grid date row and tag row must differ")
	}
	if l.FirstDataRow <= l.DateRow || l.FirstDataRow <= l.TagRow {
		return fmt.Errorf("grid first data row must be below the header rows")
	}
	if l.FirstDataCol == l.NameCol {
		return fmt.Errorf("grid first data column must differ from the name column")
	}
	if l.MorningLabel == "" || l.EveningLabel == "" || l.MorningLabel == l.EveningLabel {
		return fmt.Errorf("grid morning and evening labels must be set and distinct")
	}
	return nil
}

// DateWindow bounds the date labels accepted by the header scan to the
// experiment window: days FirstDay..LastDay (inclusive) of Month.
type DateWindow struct {
	Month    int
	FirstDay int
	LastDay  int
}

// Validate checks the window bounds.
func (w DateWindow) Validate() error {
	if w.Month < 1 || w.Month > 12 {
		return fmt.Errorf("window month %d out of range", w.Month)
	}
	if w.FirstDay < 1 || w.LastDay > 31 || w.FirstDay > w.LastDay {
		return fmt.Errorf("window days %d..%d invalid", w.FirstDay, w.LastDay)
	}
	return nil
}

// Contains reports whether month/day lies inside the window.
func (w DateWindow) Contains(month, day int) bool {
	return month == w.Month && day >= w.FirstDay && day <= w.LastDay
}
