package gridscan

import (
	"testing"

	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/google/go-cmp/cmp"
)

var mayWindow = models.DateWindow{Month: 5, FirstDay: 8, LastDay: 28}

func header() (dates, tags []string) {
	dates = []string{"姓名", "", "5/8", "5/8", "5/9", "5/9", "5/10", "5/10"}
	tags = []string{"", "", "早上", "晚上", "早上", "晚上", "早上", "晚上"}
	return dates, tags
}

func TestFindColumn(t *testing.T) {
	dates, tags := header()

	tests := []struct {
		name    string
		target  models.Bucket
		label   string
		wantCol int
		wantOK  bool
	}{
		{"first morning", models.Bucket{DateLabel: "5/8", Tag: models.Morning}, "早上", 3, true},
		{"first evening", models.Bucket{DateLabel: "5/8", Tag: models.Evening}, "晚上", 4, true},
		{"later evening", models.Bucket{DateLabel: "5/10", Tag: models.Evening}, "晚上", 8, true},
		{"date missing", models.Bucket{DateLabel: "5/11", Tag: models.Morning}, "早上", 0, false},
		{"tag label mismatch", models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "中午", 0, false},
		{"empty tag label", models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "", 0, false},
		{"numeric but not textual match", models.Bucket{DateLabel: "05/09", Tag: models.Morning}, "早上", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := FindColumn(dates, tags, tt.target, tt.label, 3, mayWindow)
			if col != tt.wantCol || ok != tt.wantOK {
				t.Errorf("got (%d, %v), want (%d, %v)", col, ok, tt.wantCol, tt.wantOK)
			}
		})
	}
}

func TestFindColumn_RejectsOutsideWindow(t *testing.T) {
	dates := []string{"", "", "5/28", "5/28", "5/29", "5/29", "6/10"}
	tags := []string{"", "", "早上", "晚上", "早上", "晚上", "早上"}

	if col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/28", Tag: models.Evening}, "晚上", 3, mayWindow); !ok || col != 4 {
		t.Errorf("5/28 evening: got (%d, %v), want (4, true)", col, ok)
	}
	if col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/29", Tag: models.Morning}, "早上", 3, mayWindow); ok {
		t.Errorf("5/29 is outside the window but matched column %d", col)
	}
	if col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "6/10", Tag: models.Morning}, "早上", 3, mayWindow); ok {
		t.Errorf("6/10 is outside the window but matched column %d", col)
	}
}

func TestFindColumn_SkipsLabelColumns(t *testing.T) {
	// A matching pair left of firstDataCol must be ignored.
	dates := []string{"5/9", "5/9", "5/9"}
	tags := []string{"早上", "", "早上"}
	col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "早上", 2, mayWindow)
	if !ok || col != 3 {
		t.Errorf("got (%d, %v), want (3, true)", col, ok)
	}
}

func TestFindColumn_LeftmostWins(t *testing.T) {
	dates := []string{"", "5/9", "5/9", "5/9"}
	tags := []string{"", "早上", "晚上", "早上"}
	col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "早上", 2, mayWindow)
	if !ok || col != 2 {
		t.Errorf("got (%d, %v), want (2, true)", col, ok)
	}
}

func TestFindColumn_ShortRowsReadAsBlank(t *testing.T) {
	// Tag row longer than date row: trailing columns have blank dates.
	dates := []string{"", "", "5/9"}
	tags := []string{"", "", "早上", "晚上", "早上"}
	if _, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/9", Tag: models.Evening}, "晚上", 3, mayWindow); ok {
		t.Error("matched a column whose date cell is missing")
	}

	// Date row longer than tag row.
	dates = []string{"", "", "5/9", "5/9"}
	tags = []string{"", "", "早上"}
	if col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "早上", 3, mayWindow); !ok || col != 3 {
		t.Errorf("got (%d, %v), want (3, true)", col, ok)
	}

	if _, ok := FindColumn(nil, nil, models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "早上", 3, mayWindow); ok {
		t.Error("matched on empty header")
	}
}

func TestFindColumn_TrimsHeaderCells(t *testing.T) {
	dates := []string{"", " 5/9 "}
	tags := []string{"", "早上 "}
	col, ok := FindColumn(dates, tags, models.Bucket{DateLabel: "5/9", Tag: models.Morning}, "早上", 2, mayWindow)
	if !ok || col != 2 {
		t.Errorf("got (%d, %v), want (2, true)", col, ok)
	}
}

func TestFindColumn_PermutingUnrelatedColumns(t *testing.T) {
	target := models.Bucket{DateLabel: "5/12", Tag: models.Evening}

	base := [][2]string{{"5/8", "早上"}, {"5/9", "晚上"}, {"5/12", "早上"}, {"5/20", "晚上"}}
	perms := [][]int{{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}

	for _, p := range perms {
		// target column always sits at column 3
		dates := []string{"", "", "5/12"}
		tags := []string{"", "", "晚上"}
		for _, i := range p {
			dates = append(dates, base[i][0])
			tags = append(tags, base[i][1])
		}

		col, ok := FindColumn(dates, tags, target, "晚上", 3, mayWindow)
		if !ok || col != 3 {
			t.Errorf("perm %v: got (%d, %v), want (3, true)", p, col, ok)
		}
		again, _ := FindColumn(dates, tags, target, "晚上", 3, mayWindow)
		if again != col {
			t.Errorf("perm %v: second scan got %d, first got %d", p, again, col)
		}
	}
}

func TestFindRow_CreateMode(t *testing.T) {
	// Rows 1-2 are header rows, names start on row 3.
	names := []string{"姓名", "", "Alice", "Bob", "", "Dave"}

	tests := []struct {
		name   string
		target string
		want   RowMatch
	}{
		{"existing first", "Alice", RowMatch{Row: 3, Found: true}},
		{"existing second", "Bob", RowMatch{Row: 4, Found: true}},
		{"trimmed", "  Bob ", RowMatch{Row: 4, Found: true}},
		{"new name goes after Bob", "Carol", RowMatch{InsertAt: 5}},
		{"names below blank are hidden", "Dave", RowMatch{InsertAt: 5}},
		{"case sensitive", "alice", RowMatch{InsertAt: 5}},
		{"blank target", "   ", RowMatch{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindRow(names, tt.target, 3, models.RowModeCreate)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindRow mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFindRow_CreateMode_AppendsPastEnd(t *testing.T) {
	names := []string{"姓名", "", "Alice", "Bob"}
	got := FindRow(names, "Carol", 3, models.RowModeCreate)
	if diff := cmp.Diff(RowMatch{InsertAt: 5}, got); diff != "" {
		t.Errorf("FindRow mismatch (-want +got):\n%s", diff)
	}

	// Column shorter than the first data row: insert at the first data row.
	got = FindRow([]string{"姓名"}, "Carol", 3, models.RowModeCreate)
	if diff := cmp.Diff(RowMatch{InsertAt: 3}, got); diff != "" {
		t.Errorf("FindRow mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRow_StrictMode(t *testing.T) {
	names := []string{"姓名", "", "Alice", "Bob", "", "Dave"}

	if got := FindRow(names, "Dave", 3, models.RowModeStrict); !got.Found || got.Row != 6 {
		t.Errorf("Dave: got %+v, want row 6", got)
	}
	if got := FindRow(names, "Carol", 3, models.RowModeStrict); got.Found || got.InsertAt != 0 {
		t.Errorf("Carol: got %+v, want not found without insert point", got)
	}
	// Header cells above firstRow are never matched.
	if got := FindRow(names, "姓名", 3, models.RowModeStrict); got.Found {
		t.Errorf("header matched as participant: %+v", got)
	}
}
