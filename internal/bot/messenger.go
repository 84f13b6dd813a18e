// Package bot is the service layer between the transport and the card
// store: access control, anti-spam, pagination, review gating, and the
// localized view models the transport renders.
package bot

import "context"

// MessageRef identifies a delivered message so it can later be edited or
// deleted.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Content is what gets delivered: text, optionally with an attached
// media reference understood by the transport.
type Content struct {
	Text     string
	MediaRef string
}

// Messenger is the outbound transport. Implementations wrap a chat
// platform client; tests use an in-memory fake.
type Messenger interface {
	Send(ctx context.Context, chatID int64, c Content) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, c Content) error
	Delete(ctx context.Context, ref MessageRef) error
}
