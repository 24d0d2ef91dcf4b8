package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/VS237/momshop/internal/domain/customer"
)

const customerColumns = `id, COALESCE(user_id::text, ''), first_name, last_name, phone, email, address,
	city, customer_type, credit_limit, created_at, updated_at`

// CustomerRepository implements customer.Repository
type CustomerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a CustomerRepository
func NewCustomerRepository(db DBTX) customer.Repository {
	return &CustomerRepository{db: db}
}

// Create implements customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (
			id, user_id, first_name, last_name, phone, email, address, city,
			customer_type, credit_limit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, nullable(c.UserID), c.FirstName, c.LastName, c.Phone, c.Email, c.Address, c.City,
		c.CustomerType, c.CreditLimit, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "customers_phone_key") {
			return customer.ErrDuplicatePhone
		}
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

// FindByID implements customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// FindByUserID implements customer.Repository.FindByUserID
func (r *CustomerRepository) FindByUserID(ctx context.Context, userID string) (*customer.Customer, error) {
	return r.findOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE user_id = $1`, userID)
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName,
		&c.Phone, &c.Email, &c.Address, &c.City, &c.CustomerType, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("error finding customer: %w", err)
	}
	return &c, nil
}

// ExistsPhone implements customer.Repository.ExistsPhone
func (r *CustomerRepository) ExistsPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE phone = $1)`, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking phone: %w", err)
	}
	return exists, nil
}
