package customer

import (
	"context"
)

// Repository defines persistence operations for customers
type Repository interface {
	// Create stores a new customer profile
	Create(ctx context.Context, c *Customer) error

	// FindByID returns a customer or ErrCustomerNotFound
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByUserID returns the profile owned by a user account
	FindByUserID(ctx context.Context, userID string) (*Customer, error)

	// ExistsPhone reports whether phone is already registered
	ExistsPhone(ctx context.Context, phone string) (bool, error)
}
