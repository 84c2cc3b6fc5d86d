// internal/domain/models/sender.go
package models

// Sender identifies who sent a message and the chat it was sent in. GroupID
// and RoomID are empty for one-to-one chats; at most one of them is set.
type Sender struct {
	UserID  string
	GroupID string
	RoomID  string
}
