package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/expense"
)

func TestExpenseService(t *testing.T) {
	f := newFixture(t)
	svc := NewExpenseService(f.store, f.log)
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC) }

	rent, err := svc.Create(f.ctx, expense.TypeRent, "March rent", decimal.NewFromInt(100000), day(1))
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, expense.TypeTransport, "Delivery van", decimal.NewFromInt(5000), day(10))
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, expense.TypeTransport, "Taxi", decimal.NewFromInt(1500), day(20))
	require.NoError(t, err)

	_, err = svc.Create(f.ctx, "party", "Party", decimal.NewFromInt(10), day(1))
	assert.ErrorIs(t, err, expense.ErrInvalidType)
	_, err = svc.Create(f.ctx, expense.TypeOther, "Nothing", decimal.Zero, day(1))
	assert.ErrorIs(t, err, expense.ErrInvalidAmount)

	all, err := svc.List(f.ctx, expense.Filter{})
	require.NoError(t, err)
	assert.Len(t, all.Expenses, 3)
	assert.True(t, all.Total.Equal(decimal.NewFromInt(106500)))

	transport, err := svc.List(f.ctx, expense.Filter{Type: expense.TypeTransport, From: day(1), To: day(10)})
	require.NoError(t, err)
	require.Len(t, transport.Expenses, 1)
	assert.True(t, transport.Total.Equal(decimal.NewFromInt(5000)))

	_, err = svc.List(f.ctx, expense.Filter{Type: "party"})
	assert.ErrorIs(t, err, expense.ErrInvalidType)

	require.NoError(t, svc.Delete(f.ctx, rent.ID))
	assert.ErrorIs(t, svc.Delete(f.ctx, rent.ID), expense.ErrExpenseNotFound)
}
