package service

import (
	"context"
	"errors"

	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/store"
)

// Actor is the authenticated user on whose behalf an operation runs.
type Actor struct {
	UserID     string
	Role       user.Role
	SellerID   string
	CustomerID string
}

func (a Actor) IsAdmin() bool  { return a.Role == user.RoleAdmin }
func (a Actor) IsSeller() bool { return a.Role == user.RoleSeller }
func (a Actor) IsStaff() bool  { return a.IsAdmin() || a.IsSeller() }

// requireStaff rejects anonymous actors and customers.
func requireStaff(a Actor) error {
	if a.UserID == "" {
		return ErrUnauthenticated
	}
	if !a.IsStaff() {
		return ErrForbidden
	}
	return nil
}

// resolveSeller picks the seller profile sales are attributed to: the
// actor's own profile, or the first active seller for an admin.
func resolveSeller(ctx context.Context, repos store.Repositories, a Actor) (*seller.Seller, error) {
	if err := requireStaff(a); err != nil {
		return nil, err
	}

	if a.IsAdmin() {
		s, err := repos.Sellers.FirstActive(ctx)
		if errors.Is(err, seller.ErrSellerNotFound) {
			return nil, ErrNoSeller
		}
		return s, err
	}

	var (
		s   *seller.Seller
		err error
	)
	if a.SellerID != "" {
		s, err = repos.Sellers.FindByID(ctx, a.SellerID)
	} else {
		s, err = repos.Sellers.FindByUserID(ctx, a.UserID)
	}
	if errors.Is(err, seller.ErrSellerNotFound) {
		return nil, ErrNoSeller
	}
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, ErrForbidden
	}
	return s, nil
}
