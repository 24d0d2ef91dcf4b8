package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/VS237/momshop/internal/domain/catalog"
)

type productRepo struct {
	db access
}

func (r *productRepo) Create(ctx context.Context, p *catalog.Product) error {
	return r.db.write(func(st *state) error {
		st.products[p.ID] = *p
		st.stamp(p.ID)
		return nil
	})
}

func (r *productRepo) Update(ctx context.Context, p *catalog.Product) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return catalog.ErrProductNotFound
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return catalog.ErrProductNotFound
		}
		for _, it := range st.items {
			if it.ProductID == id {
				return catalog.ErrProductInUse
			}
		}
		for _, s := range st.sales {
			if s.ProductID == id {
				return catalog.ErrProductInUse
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var out *catalog.Product
	err := r.db.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return catalog.ErrProductNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *productRepo) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, int, error) {
	var (
		out   []*catalog.Product
		total int
	)
	err := r.db.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		matched := make([]catalog.Product, 0, len(st.products))
		for _, p := range st.products {
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.Description), search) {
				continue
			}
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			if f.InStockOnly && !p.InStock() {
				continue
			}
			if f.LowStockOnly && !p.IsLowStock() {
				continue
			}
			matched = append(matched, p)
		}
		sort.Slice(matched, func(i, j int) bool {
			return st.rank[matched[i].ID] > st.rank[matched[j].ID]
		})

		total = len(matched)
		for _, p := range paginate(matched, f.Limit, f.Offset) {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	return out, total, err
}

func (r *productRepo) CountLowStock(ctx context.Context) (int, error) {
	count := 0
	err := r.db.read(func(st *state) error {
		for _, p := range st.products {
			if p.IsLowStock() {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (r *productRepo) DecrementStock(ctx context.Context, id string, requested int) (int, error) {
	actual := 0
	err := r.db.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return catalog.ErrProductNotFound
		}
		actual = p.ClampQuantity(requested)
		p.Quantity -= actual
		p.UpdatedAt = time.Now()
		st.products[id] = p
		return nil
	})
	return actual, err
}

type categoryRepo struct {
	db access
}

func (r *categoryRepo) List(ctx context.Context) ([]*catalog.Category, error) {
	var out []*catalog.Category
	err := r.db.read(func(st *state) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var out *catalog.Category
	err := r.db.read(func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return catalog.ErrCategoryNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *categoryRepo) GetOrCreate(ctx context.Context, name string) (*catalog.Category, error) {
	var out *catalog.Category
	err := r.db.write(func(st *state) error {
		for _, c := range st.categories {
			if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
				c := c
				out = &c
				return nil
			}
		}
		c, err := catalog.NewCategory(name, "")
		if err != nil {
			return err
		}
		st.categories[c.ID] = *c
		st.stamp(c.ID)
		out = c
		return nil
	})
	return out, err
}

type supplierRepo struct {
	db access
}

func (r *supplierRepo) List(ctx context.Context) ([]*catalog.Supplier, error) {
	var out []*catalog.Supplier
	err := r.db.read(func(st *state) error {
		for _, s := range st.suppliers {
			s := s
			out = append(out, &s)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

func (r *supplierRepo) FindByID(ctx context.Context, id string) (*catalog.Supplier, error) {
	var out *catalog.Supplier
	err := r.db.read(func(st *state) error {
		s, ok := st.suppliers[id]
		if !ok {
			return catalog.ErrSupplierNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r *supplierRepo) GetOrCreate(ctx context.Context, name, city string) (*catalog.Supplier, error) {
	var out *catalog.Supplier
	err := r.db.write(func(st *state) error {
		for _, s := range st.suppliers {
			if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
				s := s
				out = &s
				return nil
			}
		}
		s, err := catalog.NewSupplier(name, city)
		if err != nil {
			return err
		}
		st.suppliers[s.ID] = *s
		st.stamp(s.ID)
		out = s
		return nil
	})
	return out, err
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
