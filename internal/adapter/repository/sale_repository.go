package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/sale"
)

// SaleRepository implements sale.Repository
type SaleRepository struct {
	db DBTX
}

// NewSaleRepository creates a SaleRepository
func NewSaleRepository(db DBTX) sale.Repository {
	return &SaleRepository{db: db}
}

// saleWhere renders f as a WHERE clause over the sales table aliased s.
func saleWhere(f sale.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.SellerID != "" {
		add("s.seller_id = $%d", f.SellerID)
	}
	if !f.From.IsZero() {
		add("s.sale_date >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("s.sale_date < $%d", f.To)
	}
	if f.OnlyCompleted {
		conds = append(conds, "s.is_completed")
	}
	if f.OnlyCredits {
		conds = append(conds, "NOT s.is_completed")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create implements sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (
			id, sale_number, seller_id, product_id, order_id, quantity, sale_amount,
			payment_method, is_completed, sale_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Number, s.SellerID, s.ProductID, nullable(s.OrderID), s.Quantity, s.SaleAmount,
		s.PaymentMethod, s.IsCompleted, s.SaleDate)
	if err != nil {
		return fmt.Errorf("error creating sale: %w", err)
	}
	return nil
}

// List implements sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, f sale.Filter) ([]*sale.Sale, error) {
	where, args := saleWhere(f)
	query := `SELECT s.id, s.sale_number, s.seller_id, s.product_id, COALESCE(p.name, ''),
			COALESCE(s.order_id::text, ''), s.quantity, s.sale_amount, s.payment_method,
			s.is_completed, s.sale_date
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id` + where + `
		ORDER BY s.sale_date DESC, s.id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing sales: %w", err)
	}
	defer rows.Close()

	var out []*sale.Sale
	for rows.Next() {
		var s sale.Sale
		if err := rows.Scan(&s.ID, &s.Number, &s.SellerID, &s.ProductID, &s.ProductName,
			&s.OrderID, &s.Quantity, &s.SaleAmount, &s.PaymentMethod, &s.IsCompleted, &s.SaleDate); err != nil {
			return nil, fmt.Errorf("error reading sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Summarize implements sale.Repository.Summarize
func (r *SaleRepository) Summarize(ctx context.Context, f sale.Filter) (sale.Summary, error) {
	where, args := saleWhere(f)
	var sum sale.Summary
	err := r.db.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(s.sale_amount), 0),
			COUNT(*),
			COALESCE(SUM(s.quantity), 0),
			COALESCE(SUM(s.sale_amount) FILTER (WHERE s.payment_method = 'cash'), 0),
			COALESCE(SUM(s.sale_amount) FILTER (WHERE s.payment_method = 'mobile_money'), 0),
			COALESCE(SUM(s.sale_amount) FILTER (WHERE s.payment_method = 'card'), 0)
		FROM sales s`+where, args...).
		Scan(&sum.Total, &sum.Count, &sum.Units, &sum.Cash, &sum.MobileMoney, &sum.Card)
	if err != nil {
		return sale.Summary{}, fmt.Errorf("error summarizing sales: %w", err)
	}
	return sum, nil
}

// DailyTotals implements sale.Repository.DailyTotals
func (r *SaleRepository) DailyTotals(ctx context.Context, f sale.Filter) ([]sale.DailyPoint, error) {
	where, args := saleWhere(f)
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', s.sale_date) AS day, COALESCE(SUM(s.sale_amount), 0), COUNT(*)
		FROM sales s`+where+`
		GROUP BY day
		ORDER BY day`, args...)
	if err != nil {
		return nil, fmt.Errorf("error aggregating daily sales: %w", err)
	}
	defer rows.Close()

	var out []sale.DailyPoint
	for rows.Next() {
		var p sale.DailyPoint
		if err := rows.Scan(&p.Date, &p.Total, &p.Count); err != nil {
			return nil, fmt.Errorf("error reading daily sales: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopProducts implements sale.Repository.TopProducts
func (r *SaleRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]sale.TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT s.product_id, COALESCE(p.name, ''), COUNT(*), COALESCE(SUM(s.quantity), 0),
			COALESCE(SUM(s.sale_amount), 0) AS revenue
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.is_completed AND s.sale_date >= $1 AND s.sale_date < $2
		GROUP BY s.product_id, p.name
		ORDER BY COUNT(*) DESC, revenue DESC, p.name
		LIMIT $3`, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("error ranking products: %w", err)
	}
	defer rows.Close()

	var out []sale.TopProduct
	for rows.Next() {
		var tp sale.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.SaleCount, &tp.Units, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("error reading product ranking: %w", err)
		}
		out = append(out, tp)
	}
	return out, rows.Err()
}

// GrossProfit implements sale.Repository.GrossProfit
func (r *SaleRepository) GrossProfit(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var profit decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(s.sale_amount - COALESCE(p.buying_price, 0) * s.quantity), 0)
		FROM sales s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.is_completed AND s.sale_date >= $1 AND s.sale_date < $2`, from, to).Scan(&profit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error computing gross profit: %w", err)
	}
	return profit, nil
}

// DeleteAll implements sale.Repository.DeleteAll
func (r *SaleRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales`)
	if err != nil {
		return 0, fmt.Errorf("error deleting sales: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ReportRepository implements sale.ReportRepository
type ReportRepository struct {
	db DBTX
}

// NewReportRepository creates a ReportRepository
func NewReportRepository(db DBTX) sale.ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, report_date, total_sales, total_customers, total_products_sold,
	cash_sales, mobile_money_sales, card_sales, generated_by, created_at, updated_at`

func scanReport(row pgx.Row) (*sale.Report, error) {
	var rep sale.Report
	err := row.Scan(&rep.ID, &rep.ReportDate, &rep.TotalSales, &rep.TotalCustomers, &rep.TotalProductsSold,
		&rep.CashSales, &rep.MobileMoneySales, &rep.CardSales, &rep.GeneratedBy, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Upsert implements sale.ReportRepository.Upsert
func (r *ReportRepository) Upsert(ctx context.Context, rep *sale.Report) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO sales_reports (
			id, report_date, total_sales, total_customers, total_products_sold,
			cash_sales, mobile_money_sales, card_sales, generated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (report_date) DO UPDATE SET
			total_sales = EXCLUDED.total_sales,
			total_customers = EXCLUDED.total_customers,
			total_products_sold = EXCLUDED.total_products_sold,
			cash_sales = EXCLUDED.cash_sales,
			mobile_money_sales = EXCLUDED.mobile_money_sales,
			card_sales = EXCLUDED.card_sales,
			generated_by = EXCLUDED.generated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		rep.ID, rep.ReportDate, rep.TotalSales, rep.TotalCustomers, rep.TotalProductsSold,
		rep.CashSales, rep.MobileMoneySales, rep.CardSales, rep.GeneratedBy, rep.CreatedAt, rep.UpdatedAt).
		Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving sales report: %w", err)
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*sale.Report, error) {
	return r.findOne(ctx, `SELECT `+reportColumns+` FROM sales_reports WHERE id = $1`, id)
}

func (r *ReportRepository) FindByDate(ctx context.Context, day time.Time) (*sale.Report, error) {
	return r.findOne(ctx, `SELECT `+reportColumns+` FROM sales_reports WHERE report_date = $1::date`, sale.TruncateDay(day))
}

func (r *ReportRepository) findOne(ctx context.Context, query string, arg any) (*sale.Report, error) {
	rep, err := scanReport(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrReportNotFound
		}
		return nil, fmt.Errorf("error finding sales report: %w", err)
	}
	return rep, nil
}

// List implements sale.ReportRepository.List
func (r *ReportRepository) List(ctx context.Context, generatedBy string, from, to time.Time) ([]*sale.Report, error) {
	var (
		conds []string
		args  []any
	)
	if generatedBy != "" {
		args = append(args, generatedBy)
		conds = append(conds, fmt.Sprintf("generated_by = $%d", len(args)))
	}
	if !from.IsZero() {
		args = append(args, from)
		conds = append(conds, fmt.Sprintf("report_date >= $%d::date", len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conds = append(conds, fmt.Sprintf("report_date < $%d::date", len(args)))
	}
	query := `SELECT ` + reportColumns + ` FROM sales_reports`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY report_date DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing sales reports: %w", err)
	}
	defer rows.Close()

	var out []*sale.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("error reading sales report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *ReportRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales_reports`)
	if err != nil {
		return 0, fmt.Errorf("error deleting sales reports: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
