package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/expense"
)

type expenseRepo struct {
	db access
}

func (r *expenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	return r.db.write(func(st *state) error {
		st.expenses[e.ID] = *e
		st.stamp(e.ID)
		return nil
	})
}

func (r *expenseRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.expenses[id]; !ok {
			return expense.ErrExpenseNotFound
		}
		delete(st.expenses, id)
		return nil
	})
}

func (r *expenseRepo) List(ctx context.Context, f expense.Filter) ([]*expense.Expense, error) {
	var out []*expense.Expense
	err := r.db.read(func(st *state) error {
		to := f.To
		if !to.IsZero() {
			to = to.AddDate(0, 0, 1)
		}
		for _, e := range st.expenses {
			if f.Type != "" && e.Type != f.Type {
				continue
			}
			if !inRange(e.Date, f.From, to) {
				continue
			}
			e := e
			out = append(out, &e)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return st.rank[out[i].ID] > st.rank[out[j].ID]
		})
		return nil
	})
	return out, err
}

func (r *expenseRepo) Total(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.db.read(func(st *state) error {
		for _, e := range st.expenses {
			if inRange(e.Date, from, to) {
				total = total.Add(e.Amount)
			}
		}
		return nil
	})
	return total, err
}
