package cart

import (
	"context"
)

// Store keeps carts between requests, keyed by session id.
type Store interface {
	// Load returns the session's cart, or an empty cart when none is stored
	Load(ctx context.Context, sessionID string) (*Cart, error)

	// Save replaces the session's cart
	Save(ctx context.Context, sessionID string, c *Cart) error

	// Delete forgets the session's cart
	Delete(ctx context.Context, sessionID string) error
}
