// internal/app/store/replies/replies.go
package replies

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for reply files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported reply table format")

// entry is the per-day record in the JSON/YAML formats:
//
//	{"2025-05-10": {"morning": "...", "evening": "..."}}
type entry struct {
	Morning string `json:"morning" yaml:"morning"`
	Evening string `json:"evening" yaml:"evening"`
}

// Table maps (calendar date, slot) to reply text. It is built once and never
// mutated, so concurrent lookups need no locking.
type Table struct {
	days map[string]entry
}

// New builds a table from a date -> slot -> text map. Unknown slots are
// rejected; empty texts are treated as absent.
func New(days map[string]map[string]string) (*Table, error) {
	t := &Table{days: make(map[string]entry, len(days))}
	for date, slots := range days {
		e := entry{}
		for slot, text := range slots {
			switch strings.ToLower(strings.TrimSpace(slot)) {
			case "morning":
				e.Morning = text
			case "evening":
				e.Evening = text
			default:
				return nil, fmt.Errorf("date %s: unknown slot %q", date, slot)
			}
		}
		if err := t.add(date, e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(date string, e entry) error {
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date key %q: want YYYY-MM-DD", date)
	}
	t.days[date] = e
	return nil
}

// Lookup returns the reply for calendarDate (YYYY-MM-DD) and tag. A missing
// entry is a normal outcome, reported with ok == false.
func (t *Table) Lookup(calendarDate string, tag models.TimeTag) (string, bool) {
	if t == nil {
		return "", false
	}
	e, ok := t.days[calendarDate]
	if !ok {
		return "", false
	}
	text := e.Morning
	if tag == models.Evening {
		text = e.Evening
	}
	return text, text != ""
}

// Len reports how many days have at least one entry.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.days)
}

// Load reads a reply table from path. The format follows the extension:
// .json, .yaml/.yml, or .xlsx (first sheet, header row date|morning|evening).
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadStructured(path, json.Unmarshal)
	case ".yaml", ".yml":
		return loadStructured(path, yaml.Unmarshal)
	case ".xlsx":
		return loadWorkbook(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func loadStructured(path string, unmarshal func([]byte, any) error) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reply table: %w", err)
	}
	var raw map[string]entry
	if err := unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse reply table %s: %w", path, err)
	}
	t := &Table{days: make(map[string]entry, len(raw))}
	for date, e := range raw {
		if err := t.add(date, e); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func loadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open reply workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("reply workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read reply workbook: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("reply workbook %s is empty", path)
	}

	head := map[string]int{}
	for i, h := range rows[0] {
		head[strings.ToLower(strings.TrimSpace(h))] = i
	}
	dateCol, ok := head["date"]
	if !ok {
		return nil, fmt.Errorf("reply workbook %s: missing date column", path)
	}
	morningCol, hasMorning := head["morning"]
	eveningCol, hasEvening := head["evening"]
	if !hasMorning && !hasEvening {
		return nil, fmt.Errorf("reply workbook %s: need a morning or evening column", path)
	}

	at := func(row []string, i int, present bool) string {
		if !present || i >= len(row) {
			return ""
		}
		return row[i]
	}

	t := &Table{days: make(map[string]entry, len(rows)-1)}
	for _, row := range rows[1:] {
		date := strings.TrimSpace(at(row, dateCol, true))
		if date == "" {
			continue
		}
		e := entry{
			Morning: at(row, morningCol, hasMorning),
			Evening: at(row, eveningCol, hasEvening),
		}
		if err := t.add(date, e); err != nil {
			return nil, err
		}
	}
	return t, nil
}
