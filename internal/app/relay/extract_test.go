package relay

import "testing"

func TestExtractPercent(t *testing.T) {
	tests := []struct {
		text  string
		want  int
		valid bool
	}{
		{"目前進度 87%", 87, true},
		{"目前進度 87 %", 87, true},
		{"目前進度87%", 87, true},
		{"目前進度 0%", 0, true},
		{"目前進度 100%", 100, true},
		{"目前進度 ６０％", 0, false}, // full-width digits are not numbers here
		{"目前進度 60％", 60, true},
		{"目前進度 140%", 0, false},
		{"目前進度 1000%", 0, false},
		{"目前進度", 0, false},
		{"目前進度 87", 0, false},
		{"目前進度 140% 其實是 40%", 0, false},
		{"目前進度 30% 然後 50%", 30, true},
		{"%50", 0, false},
		{"目前進度 007%", 7, true},
		{"目前進度 87.5%", 0, false},
		{"目前進度 87.%", 0, false},
		{"目前進度 -5%", 0, false},
		{"目前進度 +5%", 0, false},
		{"目前進度 3-5%", 0, false},
		{"目前進度 87.5% 然後 50%", 0, false},
		{"目前進度 87\u3000%", 87, true},
		{"目前進度 87\u3000％", 87, true},
	}
	for _, tt := range tests {
		got, ok := ExtractPercent(tt.text)
		if ok != tt.valid || got != tt.want {
			t.Errorf("ExtractPercent(%q): got (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.valid)
		}
	}
}
