package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for sales.
type Repository interface {
	// Create stores a sale
	Create(ctx context.Context, s *Sale) error

	// List returns sales matching f, newest first
	List(ctx context.Context, f Filter) ([]*Sale, error)

	// Summarize aggregates sales matching f
	Summarize(ctx context.Context, f Filter) (Summary, error)

	// DailyTotals returns one point per day that has sales matching f, oldest first
	DailyTotals(ctx context.Context, f Filter) ([]DailyPoint, error)

	// TopProducts ranks products by number of completed sales in [from, to)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)

	// GrossProfit is the completed revenue in [from, to) minus the buying cost
	// of the units sold
	GrossProfit(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// DeleteAll removes every sale and returns how many were removed
	DeleteAll(ctx context.Context) (int, error)
}

// ReportRepository defines persistence operations for daily reports.
type ReportRepository interface {
	// Upsert creates the report for r.ReportDate or replaces the existing one.
	// r.ID is set to the stored row's id.
	Upsert(ctx context.Context, r *Report) error

	FindByID(ctx context.Context, id string) (*Report, error)

	FindByDate(ctx context.Context, day time.Time) (*Report, error)

	// List returns reports newest first. An empty generatedBy lists all
	List(ctx context.Context, generatedBy string, from, to time.Time) ([]*Report, error)

	DeleteAll(ctx context.Context) (int, error)
}
