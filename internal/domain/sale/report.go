package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report is the stored rollup of one day of completed sales. There is at
// most one report per ReportDate.
type Report struct {
	ID                string          `json:"id"`
	ReportDate        time.Time       `json:"report_date"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalCustomers    int             `json:"total_customers"`
	TotalProductsSold int             `json:"total_products_sold"`
	CashSales         decimal.Decimal `json:"cash_sales"`
	MobileMoneySales  decimal.Decimal `json:"mobile_money_sales"`
	CardSales         decimal.Decimal `json:"card_sales"`
	GeneratedBy       string          `json:"generated_by"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewReport builds the report for day from its summary.
func NewReport(day time.Time, s Summary, generatedBy string) *Report {
	now := time.Now()
	return &Report{
		ID:                uuid.New().String(),
		ReportDate:        TruncateDay(day),
		TotalSales:        s.Total,
		TotalCustomers:    s.Count,
		TotalProductsSold: s.Units,
		CashSales:         s.Cash,
		MobileMoneySales:  s.MobileMoney,
		CardSales:         s.Card,
		GeneratedBy:       generatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// TruncateDay returns midnight of t in t's location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [start, end) covering the calendar day of t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := TruncateDay(t)
	return start, start.AddDate(0, 0, 1)
}

// Performance is a seller's sales over a period, with a daily trend.
type Performance struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Summary    Summary         `json:"summary"`
	Average    decimal.Decimal `json:"average_sale"`
	Daily      []DailyPoint    `json:"daily"`
	Sales      []*Sale         `json:"sales"`
}
