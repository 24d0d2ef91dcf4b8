package user

import (
	"context"
)

// Repository defines persistence operations for users
type Repository interface {
	// Create stores a new user
	Create(ctx context.Context, u *User) error

	// FindByID returns a user or ErrUserNotFound
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByUsername looks a user up by exact username
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail looks a user up by email, case-insensitively
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Update overwrites names, email and active flag
	Update(ctx context.Context, u *User) error

	// UpdateLastLogin stamps the user's last login time
	UpdateLastLogin(ctx context.Context, id string) error

	// ExistsUsername reports whether username is taken
	ExistsUsername(ctx context.Context, username string) (bool, error)

	// ExistsEmail reports whether email is taken by a user other than exceptID
	ExistsEmail(ctx context.Context, email, exceptID string) (bool, error)
}
