package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/VS237/momshop/internal/domain/user"
)

const userColumns = `id, username, email, first_name, last_name, password, role, is_active,
	last_login_at, created_at, updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a UserRepository
func NewUserRepository(db DBTX) user.Repository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Password,
		&u.Role, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create implements user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (
			id, username, email, first_name, last_name, password, role, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Password, u.Role, u.IsActive,
		u.CreatedAt, u.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users_username_key"):
			return user.ErrDuplicateUsername
		case isUniqueViolation(err, "idx_users_email"):
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// FindByID implements user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername implements user.Repository.FindByUsername
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

// FindByEmail implements user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, user.ErrUserNotFound
	}
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email <> '' AND LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return u, nil
}

// Update implements user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, email = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, strings.ToLower(u.Email), u.IsActive)
	if err != nil {
		if isUniqueViolation(err, "idx_users_email") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdateLastLogin implements user.Repository.UpdateLastLogin
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ExistsUsername implements user.Repository.ExistsUsername
func (r *UserRepository) ExistsUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// ExistsEmail implements user.Repository.ExistsEmail
func (r *UserRepository) ExistsEmail(ctx context.Context, email, exceptID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND id::text <> $2)`,
		email, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}
