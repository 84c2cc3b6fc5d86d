// internal/app/system/messenger/messenger.go
package messenger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/progressrelay/internal/domain/models"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// MaxTextLength is the LINE limit for a single text message, in characters.
const MaxTextLength = 5000

// Client sends replies and resolves display names through the LINE
// Messaging API.
type Client struct {
	api *messaging_api.MessagingApiAPI
}

// Option customizes the underlying API client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint points the client at a different API host (tests, proxies).
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New creates a Client authenticated with the channel access token.
func New(accessToken string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, errors.New("messenger: channel access token is required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var apiOpts []messaging_api.MessagingApiAPIOption
	if o.endpoint != "" {
		apiOpts = append(apiOpts, messaging_api.WithEndpoint(o.endpoint))
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, messaging_api.WithHTTPClient(o.httpClient))
	}
	api, err := messaging_api.NewMessagingApiAPI(accessToken, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("messenger: %w", err)
	}
	return &Client{api: api}, nil
}

// Reply sends text as the single reply for a reply token. Text longer than
// MaxTextLength is truncated.
func (c *Client) Reply(ctx context.Context, handle, text string) error {
	if handle == "" {
		return errors.New("messenger: empty reply token")
	}
	_, err := c.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: handle,
		Messages: []messaging_api.MessageInterface{
			messaging_api.TextMessage{Text: truncate(text, MaxTextLength)},
		},
	})
	if err != nil {
		return fmt.Errorf("messenger: reply: %w", err)
	}
	return nil
}

// DisplayName returns the sender's current LINE display name. Group and room
// members are looked up through the chat, which works for members who have
// not added the bot as a friend.
func (c *Client) DisplayName(ctx context.Context, sender models.Sender) (string, error) {
	if sender.UserID == "" {
		return "", errors.New("messenger: message has no sender")
	}
	api := c.api.WithContext(ctx)
	switch {
	case sender.GroupID != "":
		p, err := api.GetGroupMemberProfile(sender.GroupID, sender.UserID)
		if err != nil {
			return "", fmt.Errorf("messenger: get group member profile: %w", err)
		}
		return p.DisplayName, nil
	case sender.RoomID != "":
		p, err := api.GetRoomMemberProfile(sender.RoomID, sender.UserID)
		if err != nil {
			return "", fmt.Errorf("messenger: get room member profile: %w", err)
		}
		return p.DisplayName, nil
	}
	p, err := api.GetProfile(sender.UserID)
	if err != nil {
		return "", fmt.Errorf("messenger: get profile: %w", err)
	}
	return p.DisplayName, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
