// internal/app/store/grid/xlsx.go
package grid

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSX is a grid stored in a local workbook. Every write is saved to disk
// before WriteCell returns. Access is serialized with a mutex because an
// excelize.File is not safe for concurrent use.
type XLSX struct {
	mu    sync.Mutex
	f     *excelize.File
	sheet string
}

// OpenXLSX opens the workbook at path. When sheet is empty the first sheet
// is used; otherwise it is matched case-insensitively.
func OpenXLSX(path, sheet string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	name := findSheet(f, sheet)
	if name == "" {
		_ = f.Close()
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, path)
	}
	return &XLSX{f: f, sheet: name}, nil
}

func findSheet(f *excelize.File, want string) string {
	all := f.GetSheetList()
	if want == "" {
		if len(all) == 0 {
			return ""
		}
		return all[0]
	}
	for _, s := range all {
		if strings.EqualFold(s, want) {
			return s
		}
	}
	return ""
}

func (x *XLSX) ReadRow(ctx context.Context, row int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	rows, err := x.f.GetRows(x.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if row < 1 || row > len(rows) {
		return nil, nil
	}
	return trimTrailing(rows[row-1]), nil
}

func (x *XLSX) ReadColumn(ctx context.Context, col int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	cols, err := x.f.GetCols(x.sheet)
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	if col < 1 || col > len(cols) {
		return nil, nil
	}
	return trimTrailing(cols[col-1]), nil
}

func (x *XLSX) ReadCell(ctx context.Context, row, col int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.f.GetCellValue(x.sheet, ref)
}

func (x *XLSX) WriteCell(ctx context.Context, row, col int, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.f.SetCellValue(x.sheet, ref, value); err != nil {
		return fmt.Errorf("set %s: %w", ref, err)
	}
	if err := x.f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (x *XLSX) Name() string { return BackendXLSX }

func (x *XLSX) Ping(ctx context.Context) error { return ctx.Err() }

func (x *XLSX) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.f.Close()
}
