package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/auth"
	"github.com/VS237/momshop/pkg/logger"
)

// TokenIssuer issues access tokens.
type TokenIssuer interface {
	GenerateToken(p auth.Principal) (string, time.Time, error)
	RefreshToken(token string) (string, time.Time, error)
}

// RegisterInput is the customer sign-up form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
}

// AuthResult is a signed-in user with its access token.
type AuthResult struct {
	User       *user.User
	CustomerID string
	SellerID   string
	Token      string
	ExpiresAt  time.Time
}

type AuthService struct {
	store       store.Store
	tokens      TokenIssuer
	defaultCity string
	logger      logger.Logger
}

func NewAuthService(st store.Store, tokens TokenIssuer, defaultCity string, log logger.Logger) *AuthService {
	return &AuthService{store: st, tokens: tokens, defaultCity: defaultCity, logger: log}
}

// RegisterCustomer creates a customer account and its profile together and
// signs the new user in.
func (s *AuthService) RegisterCustomer(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var (
		u    *user.User
		cust *customer.Customer
	)
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := checkUserUnique(ctx, repos, in.Username, in.Email, ""); err != nil {
			return err
		}

		var err error
		u, err = user.NewUser(in.Username, in.Email, in.Password, user.RoleCustomer)
		if err != nil {
			return err
		}
		u.FirstName = strings.TrimSpace(in.FirstName)
		u.LastName = strings.TrimSpace(in.LastName)

		cust, err = customer.NewCustomer(u.ID, in.FirstName, in.LastName, in.Phone, u.Email, in.Address, in.City, s.defaultCity)
		if err != nil {
			return err
		}
		taken, err := repos.Customers.ExistsPhone(ctx, cust.Phone)
		if err != nil {
			return err
		}
		if taken {
			return customer.ErrDuplicatePhone
		}

		if err := repos.Users.Create(ctx, u); err != nil {
			return err
		}
		return repos.Customers.Create(ctx, cust)
	})
	if err != nil {
		return nil, txError("register customer", err)
	}

	s.logger.Info("customer registered", "user_id", u.ID, "username", u.Username)
	return s.issue(u, cust.ID, "")
}

// Login authenticates by username, or by email when the identifier has an @.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	repos := s.store.Repos()
	var (
		u   *user.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = repos.Users.FindByEmail(ctx, identifier)
	} else {
		u, err = repos.Users.FindByUsername(ctx, identifier)
	}
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	var customerID, sellerID string
	switch u.Role {
	case user.RoleSeller:
		sel, err := repos.Sellers.FindByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, seller.ErrSellerNotFound) {
			return nil, err
		}
		if sel != nil {
			if !sel.IsActive {
				return nil, ErrAccountDisabled
			}
			sellerID = sel.ID
		}
	case user.RoleCustomer:
		cust, err := repos.Customers.FindByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, customer.ErrCustomerNotFound) {
			return nil, err
		}
		if cust != nil {
			customerID = cust.ID
		}
	}

	if err := repos.Users.UpdateLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn("could not record last login", "user_id", u.ID, "error", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID, "role", string(u.Role))
	return s.issue(u, customerID, sellerID)
}

// Account returns the signed-in user.
func (s *AuthService) Account(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	u, err := s.store.Repos().Users.FindByID(ctx, userID)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrUnauthenticated
	}
	return u, err
}

// Refresh exchanges a token for a fresh one.
func (s *AuthService) Refresh(token string) (string, time.Time, error) {
	return s.tokens.RefreshToken(token)
}

// BootstrapAdmin creates an administrator account.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, email, password string) (*user.User, error) {
	var u *user.User
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := checkUserUnique(ctx, repos, username, email, ""); err != nil {
			return err
		}
		var err error
		u, err = user.NewUser(username, email, password, user.RoleAdmin)
		if err != nil {
			return err
		}
		return repos.Users.Create(ctx, u)
	})
	if err != nil {
		return nil, txError("create admin", err)
	}
	s.logger.Info("admin created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *AuthService) issue(u *user.User, customerID, sellerID string) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(auth.Principal{
		UserID:     u.ID,
		Username:   u.Username,
		Role:       string(u.Role),
		SellerID:   sellerID,
		CustomerID: customerID,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		User:       u,
		CustomerID: customerID,
		SellerID:   sellerID,
		Token:      token,
		ExpiresAt:  expiresAt,
	}, nil
}

// ActorFrom converts an authenticated principal into an Actor.
func ActorFrom(p auth.Principal) Actor {
	return Actor{
		UserID:     p.UserID,
		Role:       user.Role(p.Role),
		SellerID:   p.SellerID,
		CustomerID: p.CustomerID,
	}
}
