// internal/app/features/callback/handler.go
package callback

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/progressrelay/internal/app/relay"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"
)

// Dispatcher handles a batch of inbound text messages.
type Dispatcher interface {
	HandleAll(ctx context.Context, events []relay.Event) error
}

// Handler verifies LINE webhook deliveries and hands their text messages to
// the dispatcher.
type Handler struct {
	Secret     string
	Dispatcher Dispatcher
	Log        *zap.Logger
}

func NewHandler(secret string, d Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Secret:     secret,
		Dispatcher: d,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /callback – LINE webhook                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeCallback answers 400 when the X-Line-Signature header does not match
// the body, and "OK" otherwise. Events are processed before the response is
// written; a dropped client connection does not cancel them.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	cb, err := webhook.ParseRequest(h.Secret, r)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.Log.Warn("callback: invalid signature", zap.String("remote", r.RemoteAddr))
		} else {
			h.Log.Warn("callback: malformed request", zap.Error(err))
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	events := TextEvents(cb.Events)
	if len(events) > 0 {
		ctx := context.WithoutCancel(r.Context())
		if err := h.Dispatcher.HandleAll(ctx, events); err != nil {
			h.Log.Warn("callback: some events failed", zap.Int("events", len(events)), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// TextEvents keeps the text message events of a delivery, in order.
// Everything else (follows, stickers, postbacks) is ignored.
func TextEvents(in []webhook.EventInterface) []relay.Event {
	var out []relay.Event
	for _, event := range in {
		e, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		msg, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		ev := relay.Event{
			ID:          e.WebhookEventId,
			Text:        msg.Text,
			ReplyHandle: e.ReplyToken,
		}
		setSource(&ev, e.Source)
		out = append(out, ev)
	}
	return out
}

// setSource copies the sender and, for group or room chats, the chat id.
func setSource(ev *relay.Event, src webhook.SourceInterface) {
	switch s := src.(type) {
	case webhook.UserSource:
		ev.SenderID = s.UserId
	case webhook.GroupSource:
		ev.SenderID = s.UserId
		ev.GroupID = s.GroupId
	case webhook.RoomSource:
		ev.SenderID = s.UserId
		ev.RoomID = s.RoomId
	}
}
