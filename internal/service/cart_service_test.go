package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/domain/catalog"
)

func TestCartService(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Tea", 100, 200, 5)
	oil := f.product(t, "Oil", 400, 600, 5)
	svc := NewCartService(f.carts, f.store, f.shop.ShippingFee, f.log)

	empty, err := svc.Snapshot(f.ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, empty.Lines)
	assert.True(t, empty.Total.IsZero(), "no shipping on an empty cart")

	_, err = svc.Add(f.ctx, "s1", tea.ID, 2)
	require.NoError(t, err)
	_, err = svc.Add(f.ctx, "s1", tea.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(f.ctx, "s1", oil.ID, 1)
	require.NoError(t, err)

	_, err = svc.Add(f.ctx, "s1", "missing", 1)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	_, err = svc.Add(f.ctx, "s1", tea.ID, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	summary, err := svc.Snapshot(f.ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Count)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(1200)))
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(2200)))

	c, err := svc.Update(f.ctx, "s1", tea.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Quantity(tea.ID))

	c, err = svc.Remove(f.ctx, "s1", oil.ID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = svc.Add(f.ctx, "s2", tea.ID, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(f.ctx, "s2"))
	n, err := svc.Count(f.ctx, "s2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCartService_SnapshotSkipsDeletedProducts(t *testing.T) {
	f := newFixture(t)
	tea := f.product(t, "Tea", 100, 200, 5)
	gone := f.product(t, "Gone", 100, 200, 5)
	svc := NewCartService(f.carts, f.store, f.shop.ShippingFee, f.log)

	_, err := svc.Add(f.ctx, "s1", tea.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(f.ctx, "s1", gone.ID, 1)
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Products.Delete(f.ctx, gone.ID))

	summary, err := svc.Snapshot(f.ctx, "s1")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, tea.ID, summary.Lines[0].Product.ID)
}
