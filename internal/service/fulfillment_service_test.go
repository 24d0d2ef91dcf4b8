package service

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/domain/user"
)

func TestFulfillmentService_Process_PartialStock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Soap", 300, 500, 3)
	_, cust := f.customer(t, "awa", "677000001")
	actor, sel := f.sellerActor(t, "paul", "699000001")

	orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 5})

	res, err := f.fulfillment().Process(f.ctx, orderID, actor)
	require.NoError(t, err)

	require.Len(t, res.Lines, 1)
	line := res.Lines[0]
	assert.Equal(t, 5, line.Requested)
	assert.Equal(t, 3, line.Fulfilled)
	assert.Equal(t, OutcomePartial, line.Outcome)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1500)), res.Total.String())
	assert.True(t, res.ShippingDropped)
	assert.Equal(t, 1, res.SalesCreated)
	assert.Zero(t, f.stock(t, p.ID))

	stored, err := f.store.Repos().Orders.FindByID(f.ctx, orderID)
	require.NoError(t, err)
	assert.True(t, stored.IsProcessed)
	assert.Equal(t, order.StatusProcessed, stored.Status)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(1500)))
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 3, stored.Items[0].Quantity)
	assert.Equal(t, 5, stored.Items[0].RequestedQuantity)

	sales, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sel.ID, sales[0].SellerID)
	assert.Equal(t, orderID, sales[0].OrderID)
	assert.Equal(t, 3, sales[0].Quantity)
	assert.Equal(t, sale.PaymentCash, sales[0].PaymentMethod)
	assert.True(t, sales[0].IsCompleted)
	assert.True(t, sales[0].SaleAmount.Equal(decimal.NewFromInt(1500)))

	f.pub.AssertCalled(t, "Publish", mock.Anything, messaging.EventOrderProcessed, mock.Anything)
}

func TestFulfillmentService_Process_StockoutLineMakesNoSale(t *testing.T) {
	f := newFixture(t)
	inStock := f.product(t, "Bread", 100, 150, 10)
	empty := f.product(t, "Butter", 700, 900, 0)
	_, cust := f.customer(t, "awa", "677000001")
	actor, _ := f.sellerActor(t, "paul", "699000001")

	orderID := f.placeOrder(t, cust.ID, map[string]int{inStock.ID: 2, empty.ID: 1})

	res, err := f.fulfillment().Process(f.ctx, orderID, actor)
	require.NoError(t, err)

	assert.Equal(t, 1, res.SalesCreated)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(300)))
	outcomes := map[string]Outcome{}
	for _, l := range res.Lines {
		outcomes[l.ProductID] = l.Outcome
	}
	assert.Equal(t, OutcomeFulfilled, outcomes[inStock.ID])
	assert.Equal(t, OutcomeStockout, outcomes[empty.ID])
	assert.Equal(t, 8, f.stock(t, inStock.ID))
	assert.Zero(t, f.stock(t, empty.ID))
}

func TestFulfillmentService_Process_KeepShipping(t *testing.T) {
	f := newFixture(t)
	f.shop.KeepShippingOnFulfillment = true
	p := f.product(t, "Soap", 300, 500, 3)
	_, cust := f.customer(t, "awa", "677000001")
	actor, _ := f.sellerActor(t, "paul", "699000001")

	orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 2})

	res, err := f.fulfillment().Process(f.ctx, orderID, actor)
	require.NoError(t, err)
	assert.False(t, res.ShippingDropped)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(2000)), res.Total.String())
}

func TestFulfillmentService_Process_AlreadyProcessed(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Soap", 300, 500, 10)
	_, cust := f.customer(t, "awa", "677000001")
	actor, _ := f.sellerActor(t, "paul", "699000001")
	orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 2})

	svc := f.fulfillment()
	_, err := svc.Process(f.ctx, orderID, actor)
	require.NoError(t, err)

	res, err := svc.Process(f.ctx, orderID, actor)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	require.NotNil(t, res)
	assert.True(t, res.AlreadyProcessed)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, 8, f.stock(t, p.ID), "stock is only taken once")
	sales, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestFulfillmentService_Process_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(t *testing.T, f *fixture) Actor
		orderID string
		wantErr error
	}{
		{
			name:    "anonymous",
			actor:   func(t *testing.T, f *fixture) Actor { return Actor{} },
			wantErr: ErrUnauthenticated,
		},
		{
			name: "customer",
			actor: func(t *testing.T, f *fixture) Actor {
				u, c := f.customer(t, "zoe", "677000002")
				return Actor{UserID: u.ID, Role: user.RoleCustomer, CustomerID: c.ID}
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "admin without any active seller",
			actor:   func(t *testing.T, f *fixture) Actor { return adminActor() },
			wantErr: ErrNoSeller,
		},
		{
			name: "deactivated seller",
			actor: func(t *testing.T, f *fixture) Actor {
				a, sel := f.sellerActor(t, "paul", "699000001")
				_, err := NewSellerService(f.store, f.log).ToggleActive(f.ctx, sel.ID)
				require.NoError(t, err)
				return a
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "unknown order",
			actor:   func(t *testing.T, f *fixture) Actor { a, _ := f.sellerActor(t, "paul", "699000001"); return a },
			orderID: "missing",
			wantErr: order.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.product(t, "Soap", 300, 500, 10)
			_, cust := f.customer(t, "awa", "677000001")
			orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 2})
			if tt.orderID != "" {
				orderID = tt.orderID
			}

			res, err := f.fulfillment().Process(f.ctx, orderID, tt.actor(t, f))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
			assert.Equal(t, 10, f.stock(t, p.ID))
		})
	}
}

func TestFulfillmentService_Process_AdminUsesFirstActiveSeller(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Soap", 300, 500, 10)
	_, cust := f.customer(t, "awa", "677000001")
	_, first := f.seller(t, "paul", "699000001")
	f.seller(t, "lena", "699000002")
	orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 1})

	_, err := f.fulfillment().Process(f.ctx, orderID, adminActor())
	require.NoError(t, err)

	sales, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, first.ID, sales[0].SellerID)
}

func TestFulfillmentService_Process_ConcurrentCallsFulfillOnce(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Soap", 300, 500, 10)
	_, cust := f.customer(t, "awa", "677000001")
	actor, _ := f.sellerActor(t, "paul", "699000001")
	orderID := f.placeOrder(t, cust.ID, map[string]int{p.ID: 4})

	svc := f.fulfillment()
	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
		repeated  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Process(f.ctx, orderID, actor)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				processed++
			case assert.ErrorIs(t, err, ErrAlreadyProcessed):
				repeated++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, processed)
	assert.Equal(t, workers-1, repeated)
	assert.Equal(t, 6, f.stock(t, p.ID))

	sales, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}
