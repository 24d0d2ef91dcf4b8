package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/VS237/momshop/internal/domain/catalog"
)

const productColumns = `id, name, description, buying_price, selling_price, unit, quantity,
	min_stock_level, image_url, COALESCE(category_id::text, ''), COALESCE(supplier_id::text, ''),
	created_at, updated_at`

// ProductRepository implements catalog.Repository
type ProductRepository struct {
	db DBTX
}

// NewProductRepository creates a ProductRepository
func NewProductRepository(db DBTX) catalog.Repository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.BuyingPrice, &p.SellingPrice, &p.Unit,
		&p.Quantity, &p.MinStockLevel, &p.ImageURL, &p.CategoryID, &p.SupplierID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements catalog.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (
			id, name, description, buying_price, selling_price, unit, quantity,
			min_stock_level, image_url, category_id, supplier_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Description, p.BuyingPrice, p.SellingPrice, p.Unit, p.Quantity,
		p.MinStockLevel, p.ImageURL, nullable(p.CategoryID), nullable(p.SupplierID),
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}
	return nil
}

// Update implements catalog.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $2, description = $3, buying_price = $4, selling_price = $5, unit = $6,
			quantity = $7, min_stock_level = $8, image_url = $9, category_id = $10,
			supplier_id = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.BuyingPrice, p.SellingPrice, p.Unit, p.Quantity,
		p.MinStockLevel, p.ImageURL, nullable(p.CategoryID), nullable(p.SupplierID), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error updating product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// Delete implements catalog.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrProductInUse
		}
		return fmt.Errorf("error deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// FindByID implements catalog.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}
	return p, nil
}

// List implements catalog.Repository.List
func (r *ProductRepository) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if f.CategoryID != "" {
		conds = append(conds, "category_id = "+arg(f.CategoryID))
	}
	if f.SupplierID != "" {
		conds = append(conds, "supplier_id = "+arg(f.SupplierID))
	}
	if f.InStockOnly {
		conds = append(conds, "quantity > 0")
	}
	if f.LowStockOnly {
		conds = append(conds, "quantity <= min_stock_level")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting products: %w", err)
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + ` ORDER BY created_at DESC, id`
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error reading product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading rows: %w", err)
	}

	return products, total, nil
}

// CountLowStock implements catalog.Repository.CountLowStock
func (r *ProductRepository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= min_stock_level`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting low stock products: %w", err)
	}
	return count, nil
}

// DecrementStock implements catalog.Repository.DecrementStock. The row is
// locked before the amount is computed, so two concurrent decrements on the
// same product never read the same stock level.
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, requested int) (int, error) {
	if requested < 0 {
		requested = 0
	}

	var taken int
	err := r.db.QueryRow(ctx,
		`WITH cur AS (
			SELECT id, GREATEST(quantity, 0) AS quantity FROM products WHERE id = $1 FOR UPDATE
		)
		UPDATE products p
		SET quantity = p.quantity - LEAST(cur.quantity, $2), updated_at = NOW()
		FROM cur
		WHERE p.id = cur.id
		RETURNING LEAST(cur.quantity, $2)`,
		id, requested).Scan(&taken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, catalog.ErrProductNotFound
		}
		return 0, fmt.Errorf("error decrementing stock: %w", err)
	}
	return taken, nil
}

// CategoryRepository implements catalog.CategoryRepository
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) catalog.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	var out []*catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error reading category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var c catalog.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, description, created_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error finding category: %w", err)
	}
	return &c, nil
}

// GetOrCreate relies on the unique index on LOWER(name); a concurrent insert
// of the same name resolves to the existing row.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*catalog.Category, error) {
	c, err := catalog.NewCategory(name, "")
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO categories (id, name, description, created_at)
			VALUES ($1, $2, '', $3)
			ON CONFLICT (LOWER(name)) DO NOTHING
			RETURNING id, name, description, created_at
		)
		SELECT id, name, description, created_at FROM ins
		UNION ALL
		SELECT id, name, description, created_at FROM categories WHERE LOWER(name) = LOWER($2)
		LIMIT 1`,
		c.ID, c.Name, c.CreatedAt).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error getting or creating category: %w", err)
	}
	return c, nil
}

// SupplierRepository implements catalog.SupplierRepository
type SupplierRepository struct {
	db DBTX
}

func NewSupplierRepository(db DBTX) catalog.SupplierRepository {
	return &SupplierRepository{db: db}
}

const supplierColumns = `id, name, contact_person, phone, email, address, city, payment_terms, created_at`

func scanSupplier(row pgx.Row) (*catalog.Supplier, error) {
	var s catalog.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Phone, &s.Email, &s.Address, &s.City, &s.PaymentTerms, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List(ctx context.Context) ([]*catalog.Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error listing suppliers: %w", err)
	}
	defer rows.Close()

	var out []*catalog.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("error reading supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*catalog.Supplier, error) {
	s, err := scanSupplier(r.db.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("error finding supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepository) GetOrCreate(ctx context.Context, name, city string) (*catalog.Supplier, error) {
	s, err := catalog.NewSupplier(name, city)
	if err != nil {
		return nil, err
	}

	out, err := scanSupplier(r.db.QueryRow(ctx,
		`WITH ins AS (
			INSERT INTO suppliers (id, name, city, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (LOWER(name)) DO NOTHING
			RETURNING `+supplierColumns+`
		)
		SELECT `+supplierColumns+` FROM ins
		UNION ALL
		SELECT `+supplierColumns+` FROM suppliers WHERE LOWER(name) = LOWER($2)
		LIMIT 1`,
		s.ID, s.Name, s.City, s.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("error getting or creating supplier: %w", err)
	}
	return out, nil
}
