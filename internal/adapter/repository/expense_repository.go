package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/expense"
)

// ExpenseRepository implements expense.Repository
type ExpenseRepository struct {
	db DBTX
}

// NewExpenseRepository creates an ExpenseRepository
func NewExpenseRepository(db DBTX) expense.Repository {
	return &ExpenseRepository{db: db}
}

// Create implements expense.Repository.Create
func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO expenses (id, expenses_number, expenses_type, description, amount, expenses_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Number, e.Type, e.Description, e.Amount, e.Date, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating expense: %w", err)
	}
	return nil
}

// Delete implements expense.Repository.Delete
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// List implements expense.Repository.List
func (r *ExpenseRepository) List(ctx context.Context, f expense.Filter) ([]*expense.Expense, error) {
	var (
		conds []string
		args  []any
	)
	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("expenses_type = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("expenses_date >= $%d::date", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("expenses_date <= $%d::date", len(args)))
	}

	query := `SELECT id, expenses_number, expenses_type, description, amount, expenses_date, created_at FROM expenses`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY expenses_date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(&e.ID, &e.Number, &e.Type, &e.Description, &e.Amount, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error reading expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Total implements expense.Repository.Total
func (r *ExpenseRepository) Total(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expenses_date >= $1::date AND expenses_date < $2::date`,
		from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error summing expenses: %w", err)
	}
	return total, nil
}
