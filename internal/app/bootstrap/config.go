// internal/app/bootstrap/config.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dalemusser/progressrelay/internal/app/relay"
	"github.com/dalemusser/progressrelay/internal/app/store/grid"
	"github.com/dalemusser/progressrelay/internal/app/system/auditlog"
	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the progress relay.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: line_channel_secret, grid_backend, etc.
//   - Environment variables: PROGRESSRELAY_LINE_CHANNEL_SECRET, PROGRESSRELAY_GRID_BACKEND, etc.
//   - Command-line flags: --line_channel_secret, --grid_backend, etc.
var appConfigKeys = []config.AppKey{
	// LINE channel
	{Name: "line_channel_secret", Default: "", Desc: "LINE channel secret (webhook signature key)"},
	{Name: "line_channel_access_token", Default: "", Desc: "LINE channel access token"},

	// Time bucketing and replies
	{Name: "timezone", Default: "Asia/Taipei", Desc: "IANA time zone used to pick the morning/evening bucket"},
	{Name: "replies_path", Default: "daily_replies_2025.json", Desc: "Reply table file (.json, .yaml, .yml, or .xlsx)"},
	{Name: "trigger_keyword", Default: relay.DefaultTriggerKeyword, Desc: "Keyword that marks a progress message"},
	{Name: "reply_on_non_trigger", Default: false, Desc: "Answer messages that lack the trigger keyword"},
	{Name: "non_trigger_reply", Default: relay.DefaultNonTriggerReply, Desc: "Reply for messages without the trigger keyword"},
	{Name: "fallback_reply", Default: relay.DefaultFallbackReply, Desc: "Reply when the reply table has no text for the bucket"},
	{Name: "failure_note", Default: relay.DefaultFailureNote, Desc: "Line appended to the reply when recording fails"},

	// Grid backend
	{Name: "grid_backend", Default: grid.BackendSheets, Desc: "Progress grid backend: 'sheets', 'xlsx', 'mongo', or 'memory'"},
	{Name: "sheets_spreadsheet_id", Default: "", Desc: "Google Sheets spreadsheet ID"},
	{Name: "sheets_sheet_name", Default: "", Desc: "Sheet (tab) name; blank means the first sheet"},
	{Name: "sheets_credentials_file", Default: "credentials.json", Desc: "Google service-account credentials file"},
	{Name: "xlsx_path", Default: "progress.xlsx", Desc: "Workbook path for the xlsx backend"},
	{Name: "xlsx_sheet", Default: "", Desc: "Worksheet name; blank means the first sheet"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (mongo backend)"},
	{Name: "mongo_database", Default: "progress_relay", Desc: "MongoDB database name (mongo backend)"},
	{Name: "mongo_grid", Default: "default", Desc: "Grid name inside the cells collection (mongo backend)"},

	// Grid layout
	{Name: "grid_date_row", Default: 1, Desc: "Row holding M/D date labels"},
	{Name: "grid_tag_row", Default: 2, Desc: "Row holding morning/evening labels"},
	{Name: "grid_name_col", Default: 1, Desc: "Column holding participant names"},
	{Name: "grid_first_data_row", Default: 3, Desc: "First participant row"},
	{Name: "grid_first_data_col", Default: 2, Desc: "First progress column"},
	{Name: "morning_label", Default: "早上", Desc: "Tag row label for the morning bucket"},
	{Name: "evening_label", Default: "晚上", Desc: "Tag row label for the evening bucket"},

	// Experiment window
	{Name: "window_month", Default: 5, Desc: "Month of the experiment window"},
	{Name: "window_first_day", Default: 8, Desc: "First day of the experiment window"},
	{Name: "window_last_day", Default: 28, Desc: "Last day of the experiment window"},
	{Name: "row_mode", Default: string(models.RowModeStrict), Desc: "Unknown participants: 'strict' (report) or 'create' (append a row)"},

	// Limits, auditing, timeouts
	{Name: "grid_rate_per_minute", Default: 0, Desc: "Max grid calls per minute (0 = unlimited)"},
	{Name: "audit_log_progress", Default: "log", Desc: "Progress audit events: 'log' or 'off'"},
	{Name: "timeout_grid", Default: "", Desc: "Per-call grid timeout (e.g., 10s); blank keeps the default"},
	{Name: "timeout_lookup", Default: "", Desc: "Profile lookup and reply send timeout; blank keeps the default"},
	{Name: "timeout_event", Default: "", Desc: "Whole-event budget; blank keeps the default"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PROGRESSRELAY_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PROGRESSRELAY", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		LineChannelSecret:      appValues.String("line_channel_secret"),
		LineChannelAccessToken: appValues.String("line_channel_access_token"),

		Timezone:          appValues.String("timezone"),
		RepliesPath:       appValues.String("replies_path"),
		TriggerKeyword:    appValues.String("trigger_keyword"),
		ReplyOnNonTrigger: appValues.Bool("reply_on_non_trigger"),
		NonTriggerReply:   appValues.String("non_trigger_reply"),
		FallbackReply:     appValues.String("fallback_reply"),
		FailureNote:       appValues.String("failure_note"),

		GridBackend:           strings.ToLower(strings.TrimSpace(appValues.String("grid_backend"))),
		SheetsSpreadsheetID:   appValues.String("sheets_spreadsheet_id"),
		SheetsSheetName:       appValues.String("sheets_sheet_name"),
		SheetsCredentialsFile: appValues.String("sheets_credentials_file"),
		XLSXPath:              appValues.String("xlsx_path"),
		XLSXSheet:             appValues.String("xlsx_sheet"),
		MongoURI:              appValues.String("mongo_uri"),
		MongoDatabase:         appValues.String("mongo_database"),
		MongoGrid:             appValues.String("mongo_grid"),

		Layout: models.GridLayout{
			DateRow:      appValues.Int("grid_date_row"),
			TagRow:       appValues.Int("grid_tag_row"),
			NameCol:      appValues.Int("grid_name_col"),
			FirstDataRow: appValues.Int("grid_first_data_row"),
			FirstDataCol: appValues.Int("grid_first_data_col"),
			MorningLabel: appValues.String("morning_label"),
			EveningLabel: appValues.String("evening_label"),
		},
		Window: models.DateWindow{
			Month:    appValues.Int("window_month"),
			FirstDay: appValues.Int("window_first_day"),
			LastDay:  appValues.Int("window_last_day"),
		},
		RowMode: models.RowMode(strings.ToLower(strings.TrimSpace(appValues.String("row_mode")))),

		GridRatePerMinute: appValues.Int("grid_rate_per_minute"),
		AuditLogProgress:  appValues.String("audit_log_progress"),

		TimeoutGrid:   appValues.Duration("timeout_grid", 0),
		TimeoutLookup: appValues.Duration("timeout_lookup", 0),
		TimeoutEvent:  appValues.Duration("timeout_event", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Everything that can be checked without touching the network is checked
// here: the time zone, the grid layout, the backend's settings, and the
// service-account credentials file.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	_, err := resolveConfig(appCfg)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
	}
	return err
}

// resolveConfig validates appCfg and returns a copy with its derived fields
// (Location, SheetsCredentialsBytes) filled. WAFFLE passes AppConfig by
// value, so hooks that need the derived fields call this again.
func resolveConfig(appCfg AppConfig) (AppConfig, error) {
	var zero AppConfig
	if strings.TrimSpace(appCfg.LineChannelSecret) == "" {
		return zero, errors.New("line_channel_secret is required")
	}
	if strings.TrimSpace(appCfg.LineChannelAccessToken) == "" {
		return zero, errors.New("line_channel_access_token is required")
	}

	loc, err := time.LoadLocation(appCfg.Timezone)
	if err != nil {
		return zero, fmt.Errorf("invalid timezone %q: %w", appCfg.Timezone, err)
	}
	appCfg.Location = loc

	if strings.TrimSpace(appCfg.RepliesPath) == "" {
		return zero, errors.New("replies_path is required")
	}
	if _, err := models.ParseRowMode(string(appCfg.RowMode)); err != nil {
		return zero, err
	}
	if err := appCfg.Layout.Validate(); err != nil {
		return zero, err
	}
	if err := appCfg.Window.Validate(); err != nil {
		return zero, err
	}
	if appCfg.GridRatePerMinute < 0 {
		return zero, fmt.Errorf("grid_rate_per_minute must be >= 0, got %d", appCfg.GridRatePerMinute)
	}
	if !auditlog.ValidSetting(appCfg.AuditLogProgress) {
		return zero, fmt.Errorf("audit_log_progress must be 'log' or 'off', got %q", appCfg.AuditLogProgress)
	}
	if appCfg.TimeoutGrid < 0 || appCfg.TimeoutLookup < 0 || appCfg.TimeoutEvent < 0 {
		return zero, errors.New("timeouts must not be negative")
	}

	if err := relayConfig(appCfg).Validate(); err != nil {
		return zero, err
	}

	switch appCfg.GridBackend {
	case grid.BackendSheets:
		if strings.TrimSpace(appCfg.SheetsSpreadsheetID) == "" {
			return zero, errors.New("sheets backend requires sheets_spreadsheet_id")
		}
		raw, err := os.ReadFile(appCfg.SheetsCredentialsFile)
		if err != nil {
			return zero, fmt.Errorf("read sheets credentials: %w", err)
		}
		if _, err := grid.ParseCredentials(context.Background(), raw); err != nil {
			return zero, err
		}
		appCfg.SheetsCredentialsBytes = raw
	case grid.BackendXLSX:
		if _, err := os.Stat(appCfg.XLSXPath); err != nil {
			return zero, fmt.Errorf("xlsx workbook: %w", err)
		}
	case grid.BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			return zero, fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" || strings.TrimSpace(appCfg.MongoGrid) == "" {
			return zero, errors.New("mongo backend requires mongo_database and mongo_grid")
		}
	case grid.BackendMemory:
	default:
		return zero, fmt.Errorf("unknown grid_backend %q (want sheets, xlsx, mongo, or memory)", appCfg.GridBackend)
	}

	return appCfg, nil
}

// relayConfig derives the dispatcher configuration.
func relayConfig(appCfg AppConfig) relay.Config {
	return relay.Config{
		TriggerKeyword:    appCfg.TriggerKeyword,
		ReplyOnNonTrigger: appCfg.ReplyOnNonTrigger,
		NonTriggerReply:   appCfg.NonTriggerReply,
		FallbackReply:     appCfg.FallbackReply,
		FailureNote:       appCfg.FailureNote,
		Location:          appCfg.Location,
		Layout:            appCfg.Layout,
	}
}
