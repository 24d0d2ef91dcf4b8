package seller

import (
	"context"
)

// Repository defines persistence operations for sellers. Lookups return
// the profile joined with the owning user's names.
type Repository interface {
	Create(ctx context.Context, s *Seller) error
	Update(ctx context.Context, s *Seller) error
	FindByID(ctx context.Context, id string) (*Seller, error)
	FindByUserID(ctx context.Context, userID string) (*Seller, error)

	// FirstActive returns the earliest created active seller
	FirstActive(ctx context.Context) (*Seller, error)

	List(ctx context.Context, f Filter) ([]*Seller, error)
	CountActive(ctx context.Context) (int, error)

	// ExistsPhone and ExistsIDCard ignore the seller exceptID
	ExistsPhone(ctx context.Context, phone, exceptID string) (bool, error)
	ExistsIDCard(ctx context.Context, idCard, exceptID string) (bool, error)
}
