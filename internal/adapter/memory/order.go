package memory

import (
	"context"
	"sort"

	"github.com/VS237/momshop/internal/domain/order"
)

type orderRepo struct {
	db access
}

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	return r.db.write(func(st *state) error {
		for _, existing := range st.orders {
			if existing.Number == o.Number {
				return order.ErrDuplicateNumber
			}
		}
		header := *o
		header.Items = nil
		st.orders[o.ID] = header
		st.stamp(o.ID)
		for _, it := range o.Items {
			st.items[it.ID] = *it
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*order.Order, error) {
	return r.find(func(o order.Order) bool { return o.ID == id })
}

func (r *orderRepo) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.find(func(o order.Order) bool { return o.Number == number })
}

// LockByID needs no extra locking here: transactions already run one at a time.
func (r *orderRepo) LockByID(ctx context.Context, id string) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *orderRepo) find(match func(o order.Order) bool) (*order.Order, error) {
	var out *order.Order
	err := r.db.read(func(st *state) error {
		for _, o := range st.orders {
			if match(o) {
				out = st.withItems(o)
				return nil
			}
		}
		return order.ErrOrderNotFound
	})
	return out, err
}

func (r *orderRepo) UpdateItemQuantity(ctx context.Context, itemID string, qty int) error {
	return r.db.write(func(st *state) error {
		it, ok := st.items[itemID]
		if !ok {
			return order.ErrOrderNotFound
		}
		it.Quantity = qty
		st.items[itemID] = it
		return nil
	})
}

func (r *orderRepo) MarkProcessed(ctx context.Context, o *order.Order) error {
	return r.db.write(func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return order.ErrOrderNotFound
		}
		cur.TotalAmount = o.TotalAmount
		cur.IsProcessed = o.IsProcessed
		cur.Status = o.Status
		cur.ProcessedAt = o.ProcessedAt
		st.orders[o.ID] = cur
		return nil
	})
}

func (r *orderRepo) ListPending(ctx context.Context, limit int) ([]*order.Order, error) {
	return r.list(func(o order.Order) bool { return !o.IsProcessed }, limit, 0)
}

func (r *orderRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*order.Order, error) {
	return r.list(func(o order.Order) bool { return o.CustomerID == customerID }, limit, offset)
}

func (r *orderRepo) list(match func(o order.Order) bool, limit, offset int) ([]*order.Order, error) {
	var out []*order.Order
	err := r.db.read(func(st *state) error {
		var matched []order.Order
		for _, o := range st.orders {
			if match(o) {
				matched = append(matched, o)
			}
		}
		sort.Slice(matched, func(i, j int) bool {
			return st.rank[matched[i].ID] > st.rank[matched[j].ID]
		})
		for _, o := range paginate(matched, limit, offset) {
			out = append(out, st.withItems(o))
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) CountPending(ctx context.Context) (int, error) {
	count := 0
	err := r.db.read(func(st *state) error {
		for _, o := range st.orders {
			if !o.IsProcessed {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *orderRepo) DeleteAll(ctx context.Context) (int, error) {
	count := 0
	err := r.db.write(func(st *state) error {
		count = len(st.orders)
		st.orders = map[string]order.Order{}
		st.items = map[string]order.Item{}
		return nil
	})
	return count, err
}

// withItems returns a copy of o carrying its items in position order.
func (st *state) withItems(o order.Order) *order.Order {
	out := o
	out.Items = nil
	for _, it := range st.items {
		if it.OrderID != o.ID {
			continue
		}
		it := it
		if p, ok := st.products[it.ProductID]; ok {
			it.ProductName = p.Name
		}
		out.Items = append(out.Items, &it)
	}
	sort.Slice(out.Items, func(i, j int) bool {
		return out.Items[i].Position < out.Items[j].Position
	})
	return &out
}
