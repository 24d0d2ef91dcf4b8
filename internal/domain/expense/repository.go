package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]*Expense, error)

	// Total sums expenses dated in [from, to)
	Total(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
