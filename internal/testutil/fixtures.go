// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/progressrelay/internal/app/store/grid"
	"github.com/dalemusser/progressrelay/internal/app/store/replies"
	"github.com/dalemusser/progressrelay/internal/domain/models"
)

// Layout is the grid layout used across tests: dates on row 1, tags on
// row 2, names in column A from row 3, progress from column C.
var Layout = models.GridLayout{
	DateRow:      1,
	TagRow:       2,
	NameCol:      1,
	FirstDataRow: 3,
	FirstDataCol: 3,
	MorningLabel: "早上",
	EveningLabel: "晚上",
}

// Window is the experiment window used across tests: May 8 to May 28.
var Window = models.DateWindow{Month: 5, FirstDay: 8, LastDay: 28}

// TestContext returns a context with a timeout suitable for tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// Taipei loads the experiment time zone.
func Taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		t.Fatalf("load Asia/Taipei: %v", err)
	}
	return loc
}

// NewGrid returns an in-memory grid with a header for the given dates (two
// columns per date, morning then evening, starting at Layout.FirstDataCol)
// and the given participants from Layout.FirstDataRow down.
func NewGrid(t *testing.T, dates []string, names ...string) *grid.Memory {
	t.Helper()
	g := grid.NewMemory()

	dateRow := make([]string, Layout.FirstDataCol-1)
	tagRow := make([]string, Layout.FirstDataCol-1)
	dateRow[0] = "姓名"
	for _, d := range dates {
		dateRow = append(dateRow, d, d)
		tagRow = append(tagRow, Layout.MorningLabel, Layout.EveningLabel)
	}
	g.SetRow(Layout.DateRow, dateRow...)
	g.SetRow(Layout.TagRow, tagRow...)

	col := make([]string, Layout.FirstDataRow-1)
	col[0] = "姓名"
	col = append(col, names...)
	g.SetColumn(Layout.NameCol, col...)
	return g
}

// Cell reads one cell from g, failing the test on error.
func Cell(t *testing.T, g grid.Grid, row, col int) string {
	t.Helper()
	v, err := g.ReadCell(context.Background(), row, col)
	if err != nil {
		t.Fatalf("read cell (%d, %d): %v", row, col, err)
	}
	return v
}

// Replies builds a reply table, failing the test on error.
func Replies(t *testing.T, days map[string]map[string]string) *replies.Table {
	t.Helper()
	tbl, err := replies.New(days)
	if err != nil {
		t.Fatalf("build reply table: %v", err)
	}
	return tbl
}

// Profiles is a fake profile lookup keyed by user id.
type Profiles struct {
	Names map[string]string
	Err   error

	mu      sync.Mutex
	senders []models.Sender
}

func (p *Profiles) DisplayName(ctx context.Context, sender models.Sender) (string, error) {
	p.mu.Lock()
	p.senders = append(p.senders, sender)
	p.mu.Unlock()
	if p.Err != nil {
		return "", p.Err
	}
	return p.Names[sender.UserID], nil
}

// Calls reports how many lookups were made.
func (p *Profiles) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.senders)
}

// Senders returns the senders looked up, in call order.
func (p *Profiles) Senders() []models.Sender {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Sender(nil), p.senders...)
}

// Sent is one message captured by Replier.
type Sent struct {
	Handle string
	Text   string
}

// Replier is a fake outbound channel that records every reply.
type Replier struct {
	Err error

	mu   sync.Mutex
	sent []Sent
}

func (r *Replier) Reply(ctx context.Context, handle, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{Handle: handle, Text: text})
	return r.Err
}

// Sent returns a copy of the captured replies.
func (r *Replier) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sent(nil), r.sent...)
}

// FailingGrid wraps a grid and fails every operation with Err.
type FailingGrid struct {
	grid.Grid
	Err error
}

func (f FailingGrid) ReadRow(ctx context.Context, row int) ([]string, error) { return nil, f.Err }
func (f FailingGrid) ReadColumn(ctx context.Context, col int) ([]string, error) {
	return nil, f.Err
}
func (f FailingGrid) ReadCell(ctx context.Context, row, col int) (string, error) { return "", f.Err }
func (f FailingGrid) WriteCell(ctx context.Context, row, col int, value any) error {
	return f.Err
}
