package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrInvalidPrice     = errors.New("prices must be greater than zero")
	ErrPriceBelowCost   = errors.New("selling price must be greater than buying price")
	ErrInvalidQuantity  = errors.New("quantity cannot be negative")
	ErrProductInUse     = errors.New("product is referenced by orders or sales")
)

// DefaultMinStockLevel is the low-stock threshold applied when none is given.
const DefaultMinStockLevel = 10

// Product is a sellable item and its stock counter.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	ImageURL      string          `json:"image_url"`
	CategoryID    string          `json:"category_id"`
	SupplierID    string          `json:"supplier_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Category groups products on the storefront.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Supplier is where stock is bought from.
type Supplier struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	PaymentTerms  string    `json:"payment_terms"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Search       string
	CategoryID   string
	SupplierID   string
	InStockOnly  bool
	LowStockOnly bool
	Limit        int
	Offset       int
}

// NewProduct validates and builds a product ready to be stored.
func NewProduct(name, unit string, buying, selling decimal.Decimal, quantity, minStock int) (*Product, error) {
	p := &Product{
		ID:            uuid.New().String(),
		MinStockLevel: DefaultMinStockLevel,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := p.Apply(name, unit, buying, selling, quantity, minStock); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply overwrites the mutable fields after validating them.
func (p *Product) Apply(name, unit string, buying, selling decimal.Decimal, quantity, minStock int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !buying.IsPositive() || !selling.IsPositive() {
		return ErrInvalidPrice
	}
	if !selling.GreaterThan(buying) {
		return ErrPriceBelowCost
	}
	if quantity < 0 || minStock < 0 {
		return ErrInvalidQuantity
	}

	p.Name = name
	p.Unit = unit
	p.BuyingPrice = buying
	p.SellingPrice = selling
	p.Quantity = quantity
	p.MinStockLevel = minStock
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the stock reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockLevel
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}

// Margin is the gross profit per unit.
func (p *Product) Margin() decimal.Decimal {
	return p.SellingPrice.Sub(p.BuyingPrice)
}

// ClampQuantity returns how many of requested units the current stock can serve.
func (p *Product) ClampQuantity(requested int) int {
	if requested <= 0 || p.Quantity <= 0 {
		return 0
	}
	if requested > p.Quantity {
		return p.Quantity
	}
	return requested
}

// NewCategory builds a category from its display name.
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// NewSupplier builds a supplier located in city.
func NewSupplier(name, city string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		City:      city,
		CreatedAt: time.Now(),
	}, nil
}
