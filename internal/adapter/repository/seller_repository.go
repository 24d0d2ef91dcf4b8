package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/VS237/momshop/internal/domain/seller"
)

const sellerSelect = `SELECT s.id, s.user_id, u.username, u.first_name, u.last_name, u.email,
	s.phone, s.address, COALESCE(s.id_card_number, ''), s.salary, s.hire_date, s.is_active,
	s.created_at, s.updated_at
	FROM sellers s
	JOIN users u ON u.id = s.user_id`

// SellerRepository implements seller.Repository
type SellerRepository struct {
	db DBTX
}

// NewSellerRepository creates a SellerRepository
func NewSellerRepository(db DBTX) seller.Repository {
	return &SellerRepository{db: db}
}

func scanSeller(row pgx.Row) (*seller.Seller, error) {
	var s seller.Seller
	err := row.Scan(&s.ID, &s.UserID, &s.Username, &s.FirstName, &s.LastName, &s.Email,
		&s.Phone, &s.Address, &s.IDCardNumber, &s.Salary, &s.HireDate, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func mapSellerUniqueErr(err error) error {
	switch {
	case isUniqueViolation(err, "sellers_phone_key"):
		return seller.ErrDuplicatePhone
	case isUniqueViolation(err, "idx_sellers_id_card"):
		return seller.ErrDuplicateIDCard
	}
	return nil
}

// Create implements seller.Repository.Create
func (r *SellerRepository) Create(ctx context.Context, s *seller.Seller) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sellers (
			id, user_id, phone, address, id_card_number, salary, hire_date, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.UserID, s.Phone, s.Address, nullable(s.IDCardNumber), s.Salary, s.HireDate,
		s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if mapped := mapSellerUniqueErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error creating seller: %w", err)
	}
	return nil
}

// Update implements seller.Repository.Update
func (r *SellerRepository) Update(ctx context.Context, s *seller.Seller) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sellers SET phone = $2, address = $3, id_card_number = $4, salary = $5,
			hire_date = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.Phone, s.Address, nullable(s.IDCardNumber), s.Salary, s.HireDate, s.IsActive)
	if err != nil {
		if mapped := mapSellerUniqueErr(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error updating seller: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return seller.ErrSellerNotFound
	}
	return nil
}

// FindByID implements seller.Repository.FindByID
func (r *SellerRepository) FindByID(ctx context.Context, id string) (*seller.Seller, error) {
	return r.findOne(ctx, sellerSelect+` WHERE s.id = $1`, id)
}

// FindByUserID implements seller.Repository.FindByUserID
func (r *SellerRepository) FindByUserID(ctx context.Context, userID string) (*seller.Seller, error) {
	return r.findOne(ctx, sellerSelect+` WHERE s.user_id = $1`, userID)
}

// FirstActive implements seller.Repository.FirstActive
func (r *SellerRepository) FirstActive(ctx context.Context) (*seller.Seller, error) {
	return r.findOne(ctx, sellerSelect+` WHERE s.is_active ORDER BY s.created_at, s.id LIMIT 1`)
}

func (r *SellerRepository) findOne(ctx context.Context, query string, args ...any) (*seller.Seller, error) {
	s, err := scanSeller(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, seller.ErrSellerNotFound
		}
		return nil, fmt.Errorf("error finding seller: %w", err)
	}
	return s, nil
}

// List implements seller.Repository.List
func (r *SellerRepository) List(ctx context.Context, f seller.Filter) ([]*seller.Seller, error) {
	var (
		conds []string
		args  []any
	)
	if q := strings.TrimSpace(f.Search); q != "" {
		args = append(args, "%"+q+"%")
		conds = append(conds, `(u.username ILIKE $1 OR u.first_name ILIKE $1 OR u.last_name ILIKE $1
			OR u.email ILIKE $1 OR s.phone ILIKE $1)`)
	}
	switch f.Status {
	case seller.StatusActive:
		conds = append(conds, "s.is_active")
	case seller.StatusInactive:
		conds = append(conds, "NOT s.is_active")
	}

	query := sellerSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY s.created_at DESC, s.id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing sellers: %w", err)
	}
	defer rows.Close()

	var out []*seller.Seller
	for rows.Next() {
		s, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("error reading seller: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CountActive implements seller.Repository.CountActive
func (r *SellerRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sellers WHERE is_active`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting sellers: %w", err)
	}
	return count, nil
}

// ExistsPhone implements seller.Repository.ExistsPhone
func (r *SellerRepository) ExistsPhone(ctx context.Context, phone, exceptID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sellers WHERE phone = $1 AND id::text <> $2)`, phone, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking seller phone: %w", err)
	}
	return exists, nil
}

// ExistsIDCard implements seller.Repository.ExistsIDCard
func (r *SellerRepository) ExistsIDCard(ctx context.Context, idCard, exceptID string) (bool, error) {
	if idCard == "" {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sellers WHERE id_card_number = $1 AND id::text <> $2)`, idCard, exceptID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking seller id card: %w", err)
	}
	return exists, nil
}
