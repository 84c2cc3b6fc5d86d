// internal/app/store/grid/sheets.go
package grid

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Sheets is a grid backed by one tab of a Google spreadsheet, accessed with
// a service account.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
	sheet         string
}

// ParseCredentials validates a service-account JSON key and returns the
// credentials scoped for spreadsheet access.
func ParseCredentials(ctx context.Context, credentialsJSON []byte) (*google.Credentials, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}
	return creds, nil
}

// OpenSheets builds a Sheets grid for spreadsheetID/sheet. An empty sheet
// selects the first tab.
func OpenSheets(ctx context.Context, spreadsheetID, sheet string, credentialsJSON []byte) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	creds, err := ParseCredentials(ctx, credentialsJSON)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	if sheet == "" {
		if sheet, err = firstSheetTitle(ctx, svc, spreadsheetID); err != nil {
			return nil, err
		}
	}
	return &Sheets{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}, nil
}

func firstSheetTitle(ctx context.Context, svc *sheets.Service, spreadsheetID string) (string, error) {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("sheets metadata: %w", err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return ss.Sheets[0].Properties.Title, nil
}

// a1 prefixes ref with the quoted sheet name.
func (s *Sheets) a1(ref string) string {
	return "'" + strings.ReplaceAll(s.sheet, "'", "''") + "'!" + ref
}

func (s *Sheets) get(ctx context.Context, rng, major string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		MajorDimension(major).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", rng, err)
	}
	return resp.Values, nil
}

func firstLine(values [][]interface{}) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values[0]))
	for i, v := range values[0] {
		out[i] = cellText(v)
	}
	return trimTrailing(out)
}

func (s *Sheets) ReadRow(ctx context.Context, row int) ([]string, error) {
	if row < 1 {
		return nil, fmt.Errorf("grid: invalid row %d", row)
	}
	values, err := s.get(ctx, s.a1(fmt.Sprintf("%d:%d", row, row)), "ROWS")
	if err != nil {
		return nil, err
	}
	return firstLine(values), nil
}

func (s *Sheets) ReadColumn(ctx context.Context, col int) ([]string, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return nil, err
	}
	values, err := s.get(ctx, s.a1(name+":"+name), "COLUMNS")
	if err != nil {
		return nil, err
	}
	return firstLine(values), nil
}

func (s *Sheets) ReadCell(ctx context.Context, row, col int) (string, error) {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	values, err := s.get(ctx, s.a1(ref), "ROWS")
	if err != nil {
		return "", err
	}
	if line := firstLine(values); len(line) > 0 {
		return line[0], nil
	}
	return "", nil
}

// WriteCell uses RAW input so participant names are never evaluated as
// formulas; integers still land as numbers.
func (s *Sheets) WriteCell(ctx context.Context, row, col int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	rng := s.a1(ref)
	vr := &sheets.ValueRange{
		Range:  rng,
		Values: [][]interface{}{{value}},
	}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets update %s: %w", rng, err)
	}
	return nil
}

func (s *Sheets) Name() string { return BackendSheets }

func (s *Sheets) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).
		Do()
	return err
}

func (s *Sheets) Close() error { return nil }
