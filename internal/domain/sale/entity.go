package sale

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSaleNotFound         = errors.New("sale not found")
	ErrReportNotFound       = errors.New("sales report not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAmount        = errors.New("sale amount must be greater than zero")
)

// PaymentMethod is how a sale was paid.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
	PaymentCard        PaymentMethod = "card"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMobileMoney, PaymentCard:
		return true
	}
	return false
}

// Sale is an immutable record of units of one product leaving the shop.
// IsCompleted is false for credit sales that are still unpaid.
type Sale struct {
	ID            string          `json:"id"`
	Number        string          `json:"sale_number"`
	SellerID      string          `json:"seller_id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
	Quantity      int             `json:"quantity"`
	SaleAmount    decimal.Decimal `json:"sale_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	IsCompleted   bool            `json:"is_completed"`
	SaleDate      time.Time       `json:"sale_date"`
}

// NewSale validates and builds a sale dated now.
func NewSale(sellerID, productID string, qty int, amount decimal.Decimal, method PaymentMethod, completed bool) (*Sale, error) {
	if method == "" {
		method = PaymentCash
	}
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &Sale{
		ID:            uuid.New().String(),
		Number:        uuid.New().String(),
		SellerID:      sellerID,
		ProductID:     productID,
		Quantity:      qty,
		SaleAmount:    amount,
		PaymentMethod: method,
		IsCompleted:   completed,
		SaleDate:      time.Now(),
	}, nil
}

// Filter selects sales. Zero time bounds are open; To is exclusive.
type Filter struct {
	SellerID      string
	From          time.Time
	To            time.Time
	OnlyCompleted bool
	OnlyCredits   bool
	Limit         int
}

// Summary aggregates a set of sales.
type Summary struct {
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
	Units       int             `json:"units"`
	Cash        decimal.Decimal `json:"cash"`
	MobileMoney decimal.Decimal `json:"mobile_money"`
	Card        decimal.Decimal `json:"card"`
}

// Average is the mean sale amount, zero when there are no sales.
func (s Summary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
}

// DailyPoint is one day of a sales trend.
type DailyPoint struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// TopProduct ranks a product by how often it sold.
type TopProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SaleCount int             `json:"sale_count"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}
