package catalog

import (
	"context"
)

// Repository defines persistence operations for products.
type Repository interface {
	// Create stores a new product
	Create(ctx context.Context, p *Product) error

	// Update overwrites an existing product
	Update(ctx context.Context, p *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id string) error

	// FindByID returns a product or ErrProductNotFound
	FindByID(ctx context.Context, id string) (*Product, error)

	// List returns one page of products matching filter and the total match count
	List(ctx context.Context, filter ProductFilter) ([]*Product, int, error)

	// CountLowStock counts products at or below their minimum stock level
	CountLowStock(ctx context.Context) (int, error)

	// DecrementStock atomically removes up to requested units and returns how
	// many were actually taken. Stock never drops below zero.
	DecrementStock(ctx context.Context, id string, requested int) (int, error)
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*Category, error)
	FindByID(ctx context.Context, id string) (*Category, error)
	// GetOrCreate returns the category named name, creating it when missing
	GetOrCreate(ctx context.Context, name string) (*Category, error)
}

// SupplierRepository defines persistence operations for suppliers.
type SupplierRepository interface {
	List(ctx context.Context) ([]*Supplier, error)
	FindByID(ctx context.Context, id string) (*Supplier, error)
	// GetOrCreate returns the supplier named name, creating it in city when missing
	GetOrCreate(ctx context.Context, name, city string) (*Supplier, error)
}
