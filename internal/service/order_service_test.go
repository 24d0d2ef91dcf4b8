package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/user"
)

func TestOrderService(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 50)
	awaUser, awa := f.customer(t, "awa", "677000001")
	zoeUser, zoe := f.customer(t, "zoe", "677000002")
	seller, _ := f.sellerActor(t, "paul", "699000001")

	var ids []string
	for i := 0; i < 6; i++ {
		ids = append(ids, f.placeOrder(t, awa.ID, map[string]int{p.ID: 1}))
	}
	f.placeOrder(t, zoe.ID, map[string]int{p.ID: 1})

	svc := NewOrderService(f.store, f.log)

	latest, count, err := svc.Latest(f.ctx)
	require.NoError(t, err)
	assert.Len(t, latest, LatestOrdersLimit)
	assert.Equal(t, 7, count)

	_, err = f.fulfillment().Process(f.ctx, ids[0], seller)
	require.NoError(t, err)
	pending, err := svc.ListPending(f.ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 6)

	mine, err := svc.ListForCustomer(f.ctx, awa.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 6)
	_, err = svc.ListForCustomer(f.ctx, "", 0, 0)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	processed, err := f.store.Repos().Orders.FindByID(f.ctx, ids[0])
	require.NoError(t, err)

	awaActor := Actor{UserID: awaUser.ID, Role: user.RoleCustomer, CustomerID: awa.ID}
	zoeActor := Actor{UserID: zoeUser.ID, Role: user.RoleCustomer, CustomerID: zoe.ID}

	receipt, err := svc.Receipt(f.ctx, processed.Number, awaActor)
	require.NoError(t, err)
	assert.Len(t, receipt.Items, 1)
	_, err = svc.Receipt(f.ctx, processed.Number, zoeActor)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	_, err = svc.Receipt(f.ctx, processed.Number, seller)
	assert.NoError(t, err)
	_, err = svc.Receipt(f.ctx, processed.Number, Actor{})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ClearAll(f.ctx, seller)
	assert.ErrorIs(t, err, ErrForbidden)
	n, err := svc.ClearAll(f.ctx, adminActor())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
