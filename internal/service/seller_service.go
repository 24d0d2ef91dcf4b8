package service

import (
	"context"
	"strings"

	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// SellerInput is the seller account form. Username and Password are only
// used on creation.
type SellerInput struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Profile   seller.Profile
}

type SellerService struct {
	store  store.Store
	logger logger.Logger
}

func NewSellerService(st store.Store, log logger.Logger) *SellerService {
	return &SellerService{store: st, logger: log}
}

// Create opens a seller user account and its profile together.
func (s *SellerService) Create(ctx context.Context, in SellerInput) (*seller.Seller, error) {
	var out *seller.Seller
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := checkUserUnique(ctx, repos, in.Username, in.Email, ""); err != nil {
			return err
		}

		u, err := user.NewUser(in.Username, in.Email, in.Password, user.RoleSeller)
		if err != nil {
			return err
		}
		u.FirstName = strings.TrimSpace(in.FirstName)
		u.LastName = strings.TrimSpace(in.LastName)

		sel, err := seller.NewSeller(u.ID, in.Profile)
		if err != nil {
			return err
		}
		if err := checkSellerUnique(ctx, repos, sel, ""); err != nil {
			return err
		}

		if err := repos.Users.Create(ctx, u); err != nil {
			return err
		}
		if err := repos.Sellers.Create(ctx, sel); err != nil {
			return err
		}
		out, err = repos.Sellers.FindByID(ctx, sel.ID)
		return err
	})
	if err != nil {
		return nil, txError("create seller", err)
	}
	s.logger.Info("seller created", "seller_id", out.ID, "username", out.Username)
	return out, nil
}

// Update changes the profile plus the account's names and email.
func (s *SellerService) Update(ctx context.Context, id string, in SellerInput) (*seller.Seller, error) {
	var out *seller.Seller
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		sel, err := repos.Sellers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		u, err := repos.Users.FindByID(ctx, sel.UserID)
		if err != nil {
			return err
		}

		if err := checkUserUnique(ctx, repos, "", in.Email, u.ID); err != nil {
			return err
		}
		if err := sel.Apply(in.Profile); err != nil {
			return err
		}
		if err := checkSellerUnique(ctx, repos, sel, sel.ID); err != nil {
			return err
		}

		u.FirstName = strings.TrimSpace(in.FirstName)
		u.LastName = strings.TrimSpace(in.LastName)
		u.Email = strings.ToLower(strings.TrimSpace(in.Email))
		if err := repos.Users.Update(ctx, u); err != nil {
			return err
		}
		if err := repos.Sellers.Update(ctx, sel); err != nil {
			return err
		}
		out, err = repos.Sellers.FindByID(ctx, sel.ID)
		return err
	})
	if err != nil {
		return nil, txError("update seller", err)
	}
	return out, nil
}

// ToggleActive flips the active flag of the seller and of its user account.
func (s *SellerService) ToggleActive(ctx context.Context, id string) (*seller.Seller, error) {
	var out *seller.Seller
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		sel, err := repos.Sellers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		u, err := repos.Users.FindByID(ctx, sel.UserID)
		if err != nil {
			return err
		}

		sel.IsActive = !sel.IsActive
		u.IsActive = sel.IsActive
		if err := repos.Users.Update(ctx, u); err != nil {
			return err
		}
		if err := repos.Sellers.Update(ctx, sel); err != nil {
			return err
		}
		out = sel
		return nil
	})
	if err != nil {
		return nil, txError("toggle seller", err)
	}
	s.logger.Info("seller status changed", "seller_id", out.ID, "active", out.IsActive)
	return out, nil
}

func (s *SellerService) List(ctx context.Context, f seller.Filter) ([]*seller.Seller, error) {
	sellers, err := s.store.Repos().Sellers.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if sellers == nil {
		sellers = []*seller.Seller{}
	}
	return sellers, nil
}

func (s *SellerService) Get(ctx context.Context, id string) (*seller.Seller, error) {
	return s.store.Repos().Sellers.FindByID(ctx, id)
}

func checkUserUnique(ctx context.Context, repos store.Repositories, username, email, exceptID string) error {
	if username = strings.TrimSpace(username); username != "" {
		taken, err := repos.Users.ExistsUsername(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrDuplicateUsername
		}
	}
	if email = strings.TrimSpace(email); email != "" {
		taken, err := repos.Users.ExistsEmail(ctx, email, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrDuplicateEmail
		}
	}
	return nil
}

func checkSellerUnique(ctx context.Context, repos store.Repositories, sel *seller.Seller, exceptID string) error {
	taken, err := repos.Sellers.ExistsPhone(ctx, sel.Phone, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return seller.ErrDuplicatePhone
	}
	if sel.IDCardNumber != "" {
		taken, err := repos.Sellers.ExistsIDCard(ctx, sel.IDCardNumber, exceptID)
		if err != nil {
			return err
		}
		if taken {
			return seller.ErrDuplicateIDCard
		}
	}
	return nil
}
