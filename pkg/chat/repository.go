package chat

import (
	"context"
)

// Repository defines persistence for the assistant conversation history
type Repository interface {
	// SaveMessage appends a message to the history
	SaveMessage(ctx context.Context, message *Message) error

	// GetUserHistory returns a user's messages, newest first
	GetUserHistory(ctx context.Context, userID string, limit, offset int) ([]Message, error)

	// DeleteUserHistory removes every message of a user
	DeleteUserHistory(ctx context.Context, userID string) error

	// CountUserMessages counts a user's messages
	CountUserMessages(ctx context.Context, userID string) (int, error)
}
