// internal/app/relay/relay.go

// Package relay turns one inbound chat message into one outbound reply,
// recording a reported percentage in the progress grid on the way.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/progressrelay/internal/app/store/progress"
	"github.com/dalemusser/progressrelay/internal/app/system/auditlog"
	"github.com/dalemusser/progressrelay/internal/app/system/bucket"
	"github.com/dalemusser/progressrelay/internal/app/system/timeouts"
	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default user-facing texts.
const (
	DefaultTriggerKeyword  = "目前進度"
	DefaultFallbackReply   = "📆 今天沒有設定回覆句，請確認日期是否在範圍內"
	DefaultNonTriggerReply = "🤖 請輸入「目前進度」加上百分比，例如：目前進度 60%"
	DefaultFailureNote     = "⚠️ 進度紀錄失敗，請稍後再試"
)

// Event is an inbound text message.
type Event struct {
	ID          string // correlation id for logs; assigned when empty
	Text        string
	ReplyHandle string
	SenderID    string
	GroupID     string // set for group chats
	RoomID      string // set for multi-person rooms
}

// Sender returns who sent ev and in which chat.
func (ev Event) Sender() models.Sender {
	return models.Sender{UserID: ev.SenderID, GroupID: ev.GroupID, RoomID: ev.RoomID}
}

// Profiles resolves a sender to the display name used as the grid row key.
// Group and room members are looked up within their chat.
type Profiles interface {
	DisplayName(ctx context.Context, sender models.Sender) (string, error)
}

// Replier sends the reply for an event.
type Replier interface {
	Reply(ctx context.Context, handle, text string) error
}

// Replies is the canned reply table.
type Replies interface {
	Lookup(calendarDate string, tag models.TimeTag) (string, bool)
}

// Recorder stores a percentage for a participant and bucket.
type Recorder interface {
	Record(ctx context.Context, name string, b models.Bucket, value int) (progress.Result, error)
}

// Config is the immutable dispatcher configuration.
type Config struct {
	TriggerKeyword    string
	ReplyOnNonTrigger bool
	NonTriggerReply   string
	FallbackReply     string
	FailureNote       string
	Location          *time.Location
	Layout            models.GridLayout // tag labels for user-facing notes
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.TriggerKeyword) == "" {
		return errors.New("trigger keyword is required")
	}
	if c.Location == nil {
		return errors.New("location is required")
	}
	if c.ReplyOnNonTrigger && c.NonTriggerReply == "" {
		return errors.New("non-trigger reply text is required when reply_on_non_trigger is set")
	}
	if c.FallbackReply == "" || c.FailureNote == "" {
		return errors.New("fallback reply and failure note are required")
	}
	return nil
}

// Deps are the dispatcher's collaborators.
type Deps struct {
	Replies  Replies
	Recorder Recorder
	Profiles Profiles
	Replier  Replier
	Audit    *auditlog.Logger
	Now      func() time.Time // defaults to time.Now
}

// Dispatcher handles inbound events. It holds no per-message state and is
// safe for concurrent use.
type Dispatcher struct {
	cfg  Config
	deps Deps
	log  *zap.Logger
	now  func() time.Time
}

// New constructs a Dispatcher.
func New(cfg Config, deps Deps, logger *zap.Logger) *Dispatcher {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{cfg: cfg, deps: deps, log: logger, now: now}
}

// HandleAll handles events concurrently, each as an independent task. A
// failure in one event never stops the others; the first error is returned
// after all events finish.
func (d *Dispatcher) HandleAll(ctx context.Context, events []Event) error {
	var g errgroup.Group
	for _, ev := range events {
		g.Go(func() error {
			return d.Handle(ctx, ev)
		})
	}
	return g.Wait()
}

// Handle composes the reply for ev and sends it once. Events without a
// reply (off-topic with ReplyOnNonTrigger unset) are dropped silently.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Event())
	defer cancel()

	text, ok := d.Compose(ctx, ev)
	if !ok {
		return nil
	}

	sctx, scancel := context.WithTimeout(ctx, timeouts.Lookup())
	defer scancel()
	if err := d.deps.Replier.Reply(sctx, ev.ReplyHandle, text); err != nil {
		d.log.Error("reply send failed",
			zap.String("event_id", ev.ID),
			zap.String("sender_id", ev.SenderID),
			zap.Error(err))
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// Compose builds the reply text for ev without sending it. ok is false when
// the message should get no reply at all.
func (d *Dispatcher) Compose(ctx context.Context, ev Event) (string, bool) {
	text := strings.TrimSpace(ev.Text)
	if !strings.Contains(text, d.cfg.TriggerKeyword) {
		if d.cfg.ReplyOnNonTrigger {
			return d.cfg.NonTriggerReply, true
		}
		return "", false
	}

	res := bucket.Resolve(d.now(), d.cfg.Location)
	reply, found := d.deps.Replies.Lookup(res.CalendarDate(), res.Bucket.Tag)
	if !found {
		reply = d.cfg.FallbackReply
	}

	value, ok := ExtractPercent(text)
	if !ok {
		return reply, true
	}
	if note := d.record(ctx, ev, res.Bucket, value); note != "" {
		reply += "\n" + note
	}
	return reply, true
}

// record writes value for the sender and returns the line to append to the
// reply. Collaborator failures are logged here and never escape.
func (d *Dispatcher) record(ctx context.Context, ev Event, b models.Bucket, value int) string {
	tagLabel := d.cfg.Layout.TagLabel(b.Tag)
	bucketKey := b.DateLabel + " " + tagLabel
	log := d.log.With(
		zap.String("event_id", ev.ID),
		zap.String("sender_id", ev.SenderID),
		zap.String("bucket", bucketKey),
		zap.Int("value", value),
	)

	pctx, cancel := context.WithTimeout(ctx, timeouts.Lookup())
	name, err := d.deps.Profiles.DisplayName(pctx, ev.Sender())
	cancel()
	if err != nil {
		log.Error("profile lookup failed", zap.String("op", "profile"), zap.Error(err))
		d.deps.Audit.Failed(ctx, auditlog.EventProfileLookupFailed, ev.ID, ev.SenderID, "", bucketKey, err)
		return d.cfg.FailureNote
	}

	res, err := d.deps.Recorder.Record(ctx, name, b, value)
	switch {
	case errors.Is(err, progress.ErrColumnNotFound):
		log.Info("no grid column for bucket", zap.String("participant", name))
		d.deps.Audit.Skipped(ctx, auditlog.EventProgressNoColumn, ev.ID, ev.SenderID, name, bucketKey, "no column")
		return fmt.Sprintf("📋 %s %s 沒有開放進度紀錄", b.DateLabel, tagLabel)
	case errors.Is(err, progress.ErrNameNotFound):
		log.Info("participant not in grid", zap.String("participant", name))
		d.deps.Audit.Skipped(ctx, auditlog.EventProgressNoName, ev.ID, ev.SenderID, name, bucketKey, "no row")
		return fmt.Sprintf("🙋 名單中找不到「%s」，請聯絡管理員", strings.TrimSpace(name))
	case err != nil:
		log.Error("progress write failed",
			zap.String("participant", name),
			zap.String("op", "record"),
			zap.Error(err))
		d.deps.Audit.Failed(ctx, auditlog.EventProgressWriteFailed, ev.ID, ev.SenderID, name, bucketKey, err)
		return d.cfg.FailureNote
	}

	if res.Created {
		d.deps.Audit.ParticipantCreated(ctx, ev.ID, ev.SenderID, name, res.Row)
	}
	d.deps.Audit.Recorded(ctx, ev.ID, ev.SenderID, name, bucketKey, res.Row, res.Col, value)
	return res.Confirmation
}
