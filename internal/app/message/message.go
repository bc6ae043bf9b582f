/*
Package message implements direct messages between two users: the record,
its Postgres store, and the service that validates, uploads attachments and persists.
*/
package message

import (
	"errors"
	"time"
)

// ErrReceiverNotFound is returned by stores when the receiver does not reference a user.
var ErrReceiverNotFound = errors.New("receiver does not exist")

// Message is a single directed chat message. It is immutable once stored.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMessage holds the fields a caller supplies; id and createdAt are store-assigned.
type NewMessage struct {
	SenderID   string
	ReceiverID string
	Text       string
	ImageURL   string
}
