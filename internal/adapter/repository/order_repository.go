package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/VS237/momshop/internal/domain/order"
)

const orderColumns = `id, order_number, customer_id, total_amount, shipping_fee, city, town,
	phone_number, status, is_processed, processed_at, order_date`

// OrderRepository implements order.Repository
type OrderRepository struct {
	db DBTX
}

// NewOrderRepository creates an OrderRepository
func NewOrderRepository(db DBTX) order.Repository {
	return &OrderRepository{db: db}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID, &o.Number, &o.CustomerID, &o.TotalAmount, &o.ShippingFee, &o.City, &o.Town,
		&o.PhoneNumber, &o.Status, &o.IsProcessed, &o.ProcessedAt, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the header and its items. Callers run it inside a
// transaction so a failing item leaves no header behind.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (
			id, order_number, customer_id, total_amount, shipping_fee, city, town,
			phone_number, status, is_processed, order_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		o.ID, o.Number, o.CustomerID, o.TotalAmount, o.ShippingFee, o.City, o.Town,
		o.PhoneNumber, o.Status, o.IsProcessed, o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return order.ErrDuplicateNumber
		}
		return fmt.Errorf("error creating order: %w", err)
	}

	for _, it := range o.Items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO order_items (
				id, order_id, product_id, quantity, requested_quantity, price_at_purchase, position
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.RequestedQuantity, it.PriceAtPurchase, it.Position)
		if err != nil {
			return fmt.Errorf("error creating order item: %w", err)
		}
	}
	return nil
}

// FindByID implements order.Repository.FindByID
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// FindByNumber implements order.Repository.FindByNumber
func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, number)
}

// LockByID takes a row lock on the order header. A second fulfillment of
// the same order blocks here until the first commits, then sees is_processed.
func (r *OrderRepository) LockByID(ctx context.Context, id string) (*order.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepository) findOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("error finding order: %w", err)
	}
	if o.Items, err = r.items(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) items(ctx context.Context, orderID string) ([]*order.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity,
			i.requested_quantity, i.price_at_purchase, i.position
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.position, i.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("error listing order items: %w", err)
	}
	defer rows.Close()

	var items []*order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.RequestedQuantity, &it.PriceAtPurchase, &it.Position); err != nil {
			return nil, fmt.Errorf("error reading order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateItemQuantity implements order.Repository.UpdateItemQuantity
func (r *OrderRepository) UpdateItemQuantity(ctx context.Context, itemID string, qty int) error {
	tag, err := r.db.Exec(ctx, `UPDATE order_items SET quantity = $2 WHERE id = $1`, itemID, qty)
	if err != nil {
		return fmt.Errorf("error updating order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// MarkProcessed implements order.Repository.MarkProcessed
func (r *OrderRepository) MarkProcessed(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET total_amount = $2, is_processed = $3, status = $4, processed_at = $5
		WHERE id = $1`,
		o.ID, o.TotalAmount, o.IsProcessed, o.Status, o.ProcessedAt)
	if err != nil {
		return fmt.Errorf("error updating order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListPending implements order.Repository.ListPending
func (r *OrderRepository) ListPending(ctx context.Context, limit int) ([]*order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE NOT is_processed ORDER BY order_date DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return r.list(ctx, query, args...)
}

// ListByCustomer implements order.Repository.ListByCustomer
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*order.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1
		ORDER BY order_date DESC, id LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	var orders []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("error reading order: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	// items are loaded after the header cursor is closed: a pgx.Tx cannot
	// run a second query while rows are still being read
	for _, o := range orders {
		if o.Items, err = r.items(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// CountPending implements order.Repository.CountPending
func (r *OrderRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE NOT is_processed`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pending orders: %w", err)
	}
	return count, nil
}

// DeleteAll implements order.Repository.DeleteAll. Items go with their
// order through ON DELETE CASCADE.
func (r *OrderRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, fmt.Errorf("error deleting orders: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
