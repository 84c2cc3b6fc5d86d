// internal/app/store/progress/progress.go
package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dalemusser/progressrelay/internal/app/store/grid"
	"github.com/dalemusser/progressrelay/internal/app/system/gridscan"
	"github.com/dalemusser/progressrelay/internal/app/system/keylock"
	"github.com/dalemusser/progressrelay/internal/app/system/timeouts"
	"github.com/dalemusser/progressrelay/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrColumnNotFound means the grid has no column for the bucket, usually
	// because the date is outside the experiment window.
	ErrColumnNotFound = errors.New("no grid column for bucket")
	// ErrNameNotFound means the participant is not in the grid and rows may
	// not be created (strict mode), or the name is blank.
	ErrNameNotFound = errors.New("participant not found in grid")
	// ErrValueOutOfRange is returned for percentages outside 0..100.
	ErrValueOutOfRange = errors.New("progress value out of range")
)

// Options configures a Recorder.
type Options struct {
	Layout models.GridLayout
	Window models.DateWindow
	Mode   models.RowMode
}

// Result describes a completed write.
type Result struct {
	Row          int
	Col          int
	Created      bool   // the participant row was created by this call
	Confirmation string // user-facing confirmation line
}

// Recorder writes progress percentages into the grid. Header rows and the
// name column are read on every call; nothing is cached because the sheet is
// edited by people while the bot runs.
type Recorder struct {
	g     grid.Grid
	opts  Options
	locks keylock.Locker

	// appendMu serializes row creation so two new participants never
	// claim the same empty row.
	appendMu sync.Mutex
}

// New creates a Recorder over g.
func New(g grid.Grid, opts Options) *Recorder {
	return &Recorder{g: g, opts: opts}
}

// Record stores value for the participant called name in bucket b.
func (r *Recorder) Record(ctx context.Context, name string, b models.Bucket, value int) (Result, error) {
	if value < 0 || value > 100 {
		return Result{}, fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Result{}, ErrNameNotFound
	}

	// Two messages from the same participant must not both create a row.
	if r.opts.Mode == models.RowModeCreate {
		unlock := r.locks.Lock(name)
		defer unlock()
	}

	col, names, err := r.scan(ctx, b)
	if err != nil {
		return Result{}, err
	}

	row, created, err := r.resolveRow(ctx, names, name)
	if err != nil {
		return Result{}, err
	}

	msg, err := r.Upsert(ctx, row, col, b, value)
	if err != nil {
		return Result{}, err
	}
	return Result{Row: row, Col: col, Created: created, Confirmation: msg}, nil
}

// scan reads both header rows and the name column concurrently and returns
// the bucket's column plus the name snapshot.
func (r *Recorder) scan(ctx context.Context, b models.Bucket) (int, []string, error) {
	var dateRow, tagRow, names []string
	l := r.opts.Layout

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dateRow, err = r.readRow(gctx, l.DateRow)
		return err
	})
	g.Go(func() (err error) {
		tagRow, err = r.readRow(gctx, l.TagRow)
		return err
	})
	g.Go(func() (err error) {
		names, err = r.readColumn(gctx, l.NameCol)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	col, ok := gridscan.FindColumn(dateRow, tagRow, b, l.TagLabel(b.Tag), l.FirstDataCol, r.opts.Window)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %s %s", ErrColumnNotFound, b.DateLabel, l.TagLabel(b.Tag))
	}
	return col, names, nil
}

// ResolveRow finds the participant's row, creating it in create mode.
func (r *Recorder) ResolveRow(ctx context.Context, name string) (row int, created bool, err error) {
	names, err := r.readColumn(ctx, r.opts.Layout.NameCol)
	if err != nil {
		return 0, false, err
	}
	return r.resolveRow(ctx, names, name)
}

func (r *Recorder) resolveRow(ctx context.Context, names []string, name string) (int, bool, error) {
	m := gridscan.FindRow(names, name, r.opts.Layout.FirstDataRow, r.opts.Mode)
	if m.Found {
		return m.Row, false, nil
	}
	if m.InsertAt == 0 {
		return 0, false, fmt.Errorf("%w: %q", ErrNameNotFound, strings.TrimSpace(name))
	}

	r.appendMu.Lock()
	defer r.appendMu.Unlock()

	// Re-read under the lock; another participant may have taken the row.
	fresh, err := r.readColumn(ctx, r.opts.Layout.NameCol)
	if err != nil {
		return 0, false, err
	}
	if m = gridscan.FindRow(fresh, name, r.opts.Layout.FirstDataRow, r.opts.Mode); m.Found {
		return m.Row, false, nil
	}
	if err := r.write(ctx, m.InsertAt, r.opts.Layout.NameCol, strings.TrimSpace(name)); err != nil {
		return 0, false, fmt.Errorf("create row for %q: %w", name, err)
	}
	return m.InsertAt, true, nil
}

// Upsert writes value into (row, col), replacing whatever was there, and
// returns the confirmation line. Repeating the call leaves the same cell
// content.
func (r *Recorder) Upsert(ctx context.Context, row, col int, b models.Bucket, value int) (string, error) {
	if value < 0 || value > 100 {
		return "", fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	if err := r.write(ctx, row, col, value); err != nil {
		return "", fmt.Errorf("write progress: %w", err)
	}
	return Confirmation(b, r.opts.Layout.TagLabel(b.Tag), value), nil
}

// Confirmation formats the line appended to the reply after a write.
func Confirmation(b models.Bucket, tagLabel string, value int) string {
	return fmt.Sprintf("✅ 已記錄 %s %s 進度 %d%%", b.DateLabel, tagLabel, value)
}

func (r *Recorder) readRow(ctx context.Context, row int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Grid())
	defer cancel()
	values, err := r.g.ReadRow(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("read header row %d: %w", row, err)
	}
	return values, nil
}

func (r *Recorder) readColumn(ctx context.Context, col int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Grid())
	defer cancel()
	values, err := r.g.ReadColumn(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("read name column %d: %w", col, err)
	}
	return values, nil
}

func (r *Recorder) write(ctx context.Context, row, col int, value any) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Grid())
	defer cancel()
	return r.g.WriteCell(ctx, row, col, value)
}
