package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// ExpenseList is a filtered set of expenses and their sum.
type ExpenseList struct {
	Expenses []*expense.Expense `json:"expenses"`
	Total    decimal.Decimal    `json:"total"`
}

type ExpenseService struct {
	store  store.Store
	logger logger.Logger
}

func NewExpenseService(st store.Store, log logger.Logger) *ExpenseService {
	return &ExpenseService{store: st, logger: log}
}

func (s *ExpenseService) Create(ctx context.Context, t expense.Type, description string, amount decimal.Decimal, date time.Time) (*expense.Expense, error) {
	e, err := expense.NewExpense(t, description, amount, date)
	if err != nil {
		return nil, err
	}
	if err := s.store.Repos().Expenses.Create(ctx, e); err != nil {
		return nil, txError("create expense", err)
	}
	s.logger.Info("expense recorded", "type", string(e.Type), "amount", e.Amount.String())
	return e, nil
}

// List returns the matching expenses, newest first, with their total.
func (s *ExpenseService) List(ctx context.Context, f expense.Filter) (*ExpenseList, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, expense.ErrInvalidType
	}
	expenses, err := s.store.Repos().Expenses.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &ExpenseList{Expenses: []*expense.Expense{}, Total: decimal.Zero}
	for _, e := range expenses {
		out.Expenses = append(out.Expenses, e)
		out.Total = out.Total.Add(e.Amount)
	}
	return out, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if err := s.store.Repos().Expenses.Delete(ctx, id); err != nil {
		return txError("delete expense", err)
	}
	return nil
}
