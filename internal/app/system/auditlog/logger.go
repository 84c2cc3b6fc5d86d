// internal/app/system/auditlog/logger.go
package auditlog

// Terminology: participant identifiers
//   - SenderID / sender_id: the chat platform's opaque user id
//   - Participant / participant: the display name used as the grid row key

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Event categories
const (
	CategoryProgress = "progress"
)

// Progress event types
const (
	EventProgressRecorded    = "progress_recorded"
	EventParticipantCreated  = "participant_created"
	EventProgressNoColumn    = "progress_no_column"
	EventProgressNoName      = "progress_no_name"
	EventProgressWriteFailed = "progress_write_failed"
	EventProfileLookupFailed = "profile_lookup_failed"
)

// Event is one audit record.
type Event struct {
	Category      string
	EventType     string
	EventID       string
	SenderID      string
	Participant   string
	Bucket        string
	Success       bool
	FailureReason string
	Details       map[string]string
}

// Config holds audit logging configuration.
type Config struct {
	// Progress controls logging for progress writes.
	// Values: "log" (zap), "off" (disabled)
	Progress string
}

// Logger writes audit events as structured zap entries. Events are not
// persisted anywhere else; the grid itself is the record of progress.
type Logger struct {
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		zapLog: zapLog,
		config: config,
	}
}

// ValidSetting reports whether s is an accepted value for Config fields.
func ValidSetting(s string) bool {
	return s == "log" || s == "off"
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
	}

	if event.EventID != "" {
		fields = append(fields, zap.String("event_id", event.EventID))
	}
	if event.SenderID != "" {
		fields = append(fields, zap.String("sender_id", event.SenderID))
	}
	if event.Participant != "" {
		fields = append(fields, zap.String("participant", event.Participant))
	}
	if event.Bucket != "" {
		fields = append(fields, zap.String("bucket", event.Bucket))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}

	setting := "log"
	if event.Category == CategoryProgress {
		setting = l.config.Progress
	}
	if setting == "off" {
		return
	}
	l.logToZap(event)
}

// --- Progress Events ---

// Recorded logs a successful progress write.
func (l *Logger) Recorded(ctx context.Context, eventID, senderID, participant, bucket string, row, col, value int) {
	l.Log(ctx, Event{
		Category:    CategoryProgress,
		EventType:   EventProgressRecorded,
		EventID:     eventID,
		SenderID:    senderID,
		Participant: participant,
		Bucket:      bucket,
		Success:     true,
		Details: map[string]string{
			"cell":  fmt.Sprintf("R%dC%d", row, col),
			"value": fmt.Sprint(value),
		},
	})
}

// ParticipantCreated logs a new participant row written in create mode.
func (l *Logger) ParticipantCreated(ctx context.Context, eventID, senderID, participant string, row int) {
	l.Log(ctx, Event{
		Category:    CategoryProgress,
		EventType:   EventParticipantCreated,
		EventID:     eventID,
		SenderID:    senderID,
		Participant: participant,
		Success:     true,
		Details: map[string]string{
			"row": fmt.Sprint(row),
		},
	})
}

// Skipped logs a report that could not be placed in the grid because the
// bucket has no column or the participant has no row.
func (l *Logger) Skipped(ctx context.Context, eventType, eventID, senderID, participant, bucket, reason string) {
	l.Log(ctx, Event{
		Category:      CategoryProgress,
		EventType:     eventType,
		EventID:       eventID,
		SenderID:      senderID,
		Participant:   participant,
		Bucket:        bucket,
		Success:       false,
		FailureReason: reason,
	})
}

// Failed logs a collaborator failure while handling a report.
func (l *Logger) Failed(ctx context.Context, eventType, eventID, senderID, participant, bucket string, err error) {
	l.Log(ctx, Event{
		Category:      CategoryProgress,
		EventType:     eventType,
		EventID:       eventID,
		SenderID:      senderID,
		Participant:   participant,
		Bucket:        bucket,
		Success:       false,
		FailureReason: err.Error(),
	})
}
