// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/progressrelay/internal/domain/models"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level, and request body size limits. Everything specific to
// the progress relay lives here.
type AppConfig struct {
	// LINE channel credentials
	LineChannelSecret      string // verifies X-Line-Signature on webhook deliveries
	LineChannelAccessToken string // authenticates reply and profile calls

	// Time bucketing
	Timezone string         // IANA zone name (e.g., Asia/Taipei)
	Location *time.Location // resolved from Timezone in ValidateConfig

	// Replies
	RepliesPath       string // reply table file (.json, .yaml, .yml, or .xlsx)
	TriggerKeyword    string // substring that marks a progress message
	ReplyOnNonTrigger bool   // answer messages without the keyword
	NonTriggerReply   string
	FallbackReply     string // sent when the bucket has no reply text
	FailureNote       string // appended when recording fails

	// Grid backend selection
	GridBackend string // sheets, xlsx, mongo, or memory

	// Google Sheets backend
	SheetsSpreadsheetID    string
	SheetsSheetName        string // blank means the first sheet
	SheetsCredentialsFile  string // service-account JSON
	SheetsCredentialsBytes []byte // read in ValidateConfig

	// Local workbook backend
	XLSXPath  string
	XLSXSheet string // blank means the first sheet

	// MongoDB backend
	MongoURI      string
	MongoDatabase string
	MongoGrid     string // grid name stored on every cell document

	// Grid layout and experiment window
	Layout  models.GridLayout
	Window  models.DateWindow
	RowMode models.RowMode

	// Outbound limits and auditing
	GridRatePerMinute int    // 0 disables limiting
	AuditLogProgress  string // log or off

	// Timeout overrides; zero keeps the default
	TimeoutGrid   time.Duration
	TimeoutLookup time.Duration
	TimeoutEvent  time.Duration
}
