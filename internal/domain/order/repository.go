package order

import (
	"context"
)

// Repository defines persistence operations for orders and their items.
type Repository interface {
	// Create stores the order header and all of its items
	Create(ctx context.Context, o *Order) error

	// FindByID returns the order with its items
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindByNumber returns the order with its items by public number
	FindByNumber(ctx context.Context, number string) (*Order, error)

	// LockByID loads the order with its items and holds a row lock on the
	// header until the surrounding transaction ends
	LockByID(ctx context.Context, id string) (*Order, error)

	// UpdateItemQuantity overwrites the fulfilled quantity of an item
	UpdateItemQuantity(ctx context.Context, itemID string, qty int) error

	// MarkProcessed persists status, processed flag and total of o
	MarkProcessed(ctx context.Context, o *Order) error

	// ListPending returns unprocessed orders, newest first. limit <= 0 means all
	ListPending(ctx context.Context, limit int) ([]*Order, error)

	// ListByCustomer returns a customer's orders, newest first
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Order, error)

	// CountPending counts unprocessed orders
	CountPending(ctx context.Context) (int, error)

	// DeleteAll removes every order and item, returning the order count
	DeleteAll(ctx context.Context) (int, error)
}
