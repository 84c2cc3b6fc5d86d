package bucket

import (
	"testing"
	"time"

	"github.com/dalemusser/progressrelay/internal/domain/models"
)

func taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestResolve_Boundaries(t *testing.T) {
	loc := taipei(t)

	tests := []struct {
		name        string
		at          time.Time
		wantLabel   string
		wantTag     models.TimeTag
		wantDate    string
		retroactive bool
	}{
		{"midnight", time.Date(2025, 5, 10, 0, 0, 0, 0, loc), "5/9", models.Evening, "2025-05-09", true},
		{"early morning", time.Date(2025, 5, 10, 3, 30, 0, 0, loc), "5/9", models.Evening, "2025-05-09", true},
		{"last minute before nine", time.Date(2025, 5, 10, 8, 59, 59, 0, loc), "5/9", models.Evening, "2025-05-09", true},
		{"nine", time.Date(2025, 5, 10, 9, 0, 0, 0, loc), "5/10", models.Morning, "2025-05-10", false},
		{"mid day", time.Date(2025, 5, 10, 14, 0, 0, 0, loc), "5/10", models.Morning, "2025-05-10", false},
		{"last minute before 21", time.Date(2025, 5, 10, 20, 59, 59, 0, loc), "5/10", models.Morning, "2025-05-10", false},
		{"21", time.Date(2025, 5, 10, 21, 0, 0, 0, loc), "5/10", models.Evening, "2025-05-10", false},
		{"23:59", time.Date(2025, 5, 10, 23, 59, 59, 0, loc), "5/10", models.Evening, "2025-05-10", false},
		{"month rollover", time.Date(2025, 6, 1, 1, 0, 0, 0, loc), "5/31", models.Evening, "2025-05-31", true},
		{"year rollover", time.Date(2026, 1, 1, 8, 0, 0, 0, loc), "12/31", models.Evening, "2025-12-31", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.at, loc)
			if got.Bucket.DateLabel != tt.wantLabel {
				t.Errorf("label: got %q, want %q", got.Bucket.DateLabel, tt.wantLabel)
			}
			if got.Bucket.Tag != tt.wantTag {
				t.Errorf("tag: got %v, want %v", got.Bucket.Tag, tt.wantTag)
			}
			if got.CalendarDate() != tt.wantDate {
				t.Errorf("calendar date: got %q, want %q", got.CalendarDate(), tt.wantDate)
			}
			if got.Retroactive != tt.retroactive {
				t.Errorf("retroactive: got %v, want %v", got.Retroactive, tt.retroactive)
			}
		})
	}
}

func TestResolve_EveryHour(t *testing.T) {
	loc := taipei(t)
	for h := 0; h < 24; h++ {
		got := Resolve(time.Date(2025, 5, 20, h, 15, 0, 0, loc), loc)
		switch {
		case h < 9:
			if got.Bucket != (models.Bucket{DateLabel: "5/19", Tag: models.Evening}) {
				t.Errorf("hour %d: got %+v, want 5/19 evening", h, got.Bucket)
			}
		case h < 21:
			if got.Bucket != (models.Bucket{DateLabel: "5/20", Tag: models.Morning}) {
				t.Errorf("hour %d: got %+v, want 5/20 morning", h, got.Bucket)
			}
		default:
			if got.Bucket != (models.Bucket{DateLabel: "5/20", Tag: models.Evening}) {
				t.Errorf("hour %d: got %+v, want 5/20 evening", h, got.Bucket)
			}
		}
	}
}

func TestResolve_UsesExperimentZone(t *testing.T) {
	loc := taipei(t)

	// 2025-05-10 00:30 UTC is 08:30 in Taipei: still the previous evening.
	got := Resolve(time.Date(2025, 5, 10, 0, 30, 0, 0, time.UTC), loc)
	if got.Bucket.DateLabel != "5/9" || got.Bucket.Tag != models.Evening {
		t.Errorf("got %+v, want 5/9 evening", got.Bucket)
	}

	// 2025-05-10 13:00 UTC is 21:00 in Taipei.
	got = Resolve(time.Date(2025, 5, 10, 13, 0, 0, 0, time.UTC), loc)
	if got.Bucket.DateLabel != "5/10" || got.Bucket.Tag != models.Evening {
		t.Errorf("got %+v, want 5/10 evening", got.Bucket)
	}
}

func TestLabel_NoLeadingZeros(t *testing.T) {
	cases := map[string]time.Time{
		"5/8":   time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC),
		"5/28":  time.Date(2025, 5, 28, 12, 0, 0, 0, time.UTC),
		"12/1":  time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC),
		"10/10": time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC),
	}
	for want, at := range cases {
		if got := Label(at); got != want {
			t.Errorf("Label(%v): got %q, want %q", at, got, want)
		}
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		in        string
		month     int
		day       int
		wantValid bool
	}{
		{"5/10", 5, 10, true},
		{" 5/8 ", 5, 8, true},
		{"05/08", 5, 8, true},
		{"5-10", 0, 0, false},
		{"5/", 0, 0, false},
		{"13/1", 0, 0, false},
		{"5/32", 0, 0, false},
		{"a/b", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		m, d, ok := ParseLabel(tt.in)
		if ok != tt.wantValid || m != tt.month || d != tt.day {
			t.Errorf("ParseLabel(%q): got (%d, %d, %v), want (%d, %d, %v)",
				tt.in, m, d, ok, tt.month, tt.day, tt.wantValid)
		}
	}
}
