package replies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "daily_replies_2025.json", `{
  "2025-05-10": {"morning": "早安，今天也加油", "evening": "晚安，辛苦了"},
  "2025-05-11": {"morning": "第二天"}
}`)

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len: got %d, want 2", tbl.Len())
	}

	if got, ok := tbl.Lookup("2025-05-10", models.Morning); !ok || got != "早安，今天也加油" {
		t.Errorf("morning: got (%q, %v)", got, ok)
	}
	if got, ok := tbl.Lookup("2025-05-10", models.Evening); !ok || got != "晚安，辛苦了" {
		t.Errorf("evening: got (%q, %v)", got, ok)
	}
	if _, ok := tbl.Lookup("2025-05-11", models.Evening); ok {
		t.Error("empty evening text should be absent")
	}
	if _, ok := tbl.Lookup("2025-06-01", models.Morning); ok {
		t.Error("date outside the table should be absent")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "replies.yaml", `
"2025-05-12":
  morning: 早
  evening: 晚
`)
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := tbl.Lookup("2025-05-12", models.Evening); !ok || got != "晚" {
		t.Errorf("evening: got (%q, %v)", got, ok)
	}
}

func TestLoad_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Date", "Morning", "Evening"},
		{"2025-05-13", "早上好", "晚上好"},
		{"", "ignored", ""},
		{"2025-05-14", "", "只有晚上"},
	}
	for i, r := range rows {
		ref, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", ref, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "replies.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len: got %d, want 2", tbl.Len())
	}
	if got, ok := tbl.Lookup("2025-05-13", models.Morning); !ok || got != "早上好" {
		t.Errorf("morning: got (%q, %v)", got, ok)
	}
	if _, ok := tbl.Lookup("2025-05-14", models.Morning); ok {
		t.Error("blank morning should be absent")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "replies.txt", "x")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(writeFile(t, "bad.json", "{not json")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Load(writeFile(t, "baddate.json", `{"5/10": {"morning": "x"}}`)); err == nil {
		t.Error("expected error for non-ISO date key")
	}
}

func TestNew(t *testing.T) {
	tbl, err := New(map[string]map[string]string{
		"2025-05-10": {"morning": "m", "Evening": "e"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, _ := tbl.Lookup("2025-05-10", models.Evening); got != "e" {
		t.Errorf("evening: got %q, want %q", got, "e")
	}

	if _, err := New(map[string]map[string]string{"2025-05-10": {"noon": "x"}}); err == nil {
		t.Error("expected error for unknown slot")
	}

	var nilTable *Table
	if _, ok := nilTable.Lookup("2025-05-10", models.Morning); ok {
		t.Error("nil table should find nothing")
	}
}
