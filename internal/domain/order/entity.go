package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrDuplicateNumber     = errors.New("order number already exists")
	ErrNoItems             = errors.New("order must have at least one item")
	ErrInvalidItemQuantity = errors.New("item quantity must be greater than zero")
)

// Status is the lifecycle stage of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusProcessed Status = "Processed"
	StatusShipped   Status = "Shipped"
	StatusCancelled Status = "Cancelled"
)

// NumberLength is the size of the public order number.
const NumberLength = 8

// Order is a customer purchase awaiting or past fulfillment.
type Order struct {
	ID          string          `json:"id"`
	Number      string          `json:"order_number"`
	CustomerID  string          `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	City        string          `json:"city"`
	Town        string          `json:"town"`
	PhoneNumber string          `json:"phone_number"`
	Status      Status          `json:"status"`
	IsProcessed bool            `json:"is_processed"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `json:"order_date"`
	Items       []*Item         `json:"items,omitempty"`
}

// Item is one product line of an order. Quantity holds what was fulfilled
// once the order is processed; RequestedQuantity keeps what was ordered.
type Item struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"order_id"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name,omitempty"`
	Quantity          int             `json:"quantity"`
	RequestedQuantity int             `json:"requested_quantity"`
	PriceAtPurchase   decimal.Decimal `json:"price_at_purchase"`
	Position          int             `json:"position"`
}

// Shipping holds the delivery destination typed in at checkout.
type Shipping struct {
	City  string
	Town  string
	Phone string
}

// NewNumber returns a fresh public order number: the first eight hex
// characters of a random UUID, upper-cased.
func NewNumber() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:NumberLength])
}

// NewOrder builds a pending order for customerID.
func NewOrder(customerID string, shipping Shipping, shippingFee decimal.Decimal) *Order {
	return &Order{
		ID:          uuid.New().String(),
		Number:      NewNumber(),
		CustomerID:  customerID,
		ShippingFee: shippingFee,
		City:        shipping.City,
		Town:        shipping.Town,
		PhoneNumber: shipping.Phone,
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
}

// AddItem appends a line priced at the product's current selling price.
func (o *Order) AddItem(productID string, qty int, price decimal.Decimal) (*Item, error) {
	if qty <= 0 {
		return nil, ErrInvalidItemQuantity
	}
	item := &Item{
		ID:                uuid.New().String(),
		OrderID:           o.ID,
		ProductID:         productID,
		Quantity:          qty,
		RequestedQuantity: qty,
		PriceAtPurchase:   price,
		Position:          len(o.Items),
	}
	o.Items = append(o.Items, item)
	return item, nil
}

// Subtotal is the sum of the item line totals.
func (o *Order) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// CalculateTotal sets TotalAmount to the items subtotal plus the shipping fee.
func (o *Order) CalculateTotal() decimal.Decimal {
	o.TotalAmount = o.Subtotal().Add(o.ShippingFee)
	return o.TotalAmount
}

// MarkProcessed closes the order with its fulfilled total.
func (o *Order) MarkProcessed(total decimal.Decimal) {
	now := time.Now()
	o.TotalAmount = total
	o.IsProcessed = true
	o.Status = StatusProcessed
	o.ProcessedAt = &now
}

// RegenerateNumber assigns a new public number, used after a collision.
func (o *Order) RegenerateNumber() {
	o.Number = NewNumber()
}

// LineTotal is quantity times the price captured at purchase.
func (i *Item) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
