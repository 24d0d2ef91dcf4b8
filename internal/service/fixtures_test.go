package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/adapter/cartstore"
	"github.com/VS237/momshop/internal/adapter/memory"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/mocks"
	"github.com/VS237/momshop/pkg/logger"
)

const testPassword = "s3cret-pass"

type fixture struct {
	ctx   context.Context
	store *memory.Store
	carts *cartstore.MemoryStore
	pub   *mocks.MockPublisher
	log   logger.Logger
	shop  config.Shop
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return &fixture{
		ctx:   context.Background(),
		store: memory.NewStore(),
		carts: cartstore.NewMemoryStore(time.Hour),
		pub:   pub,
		log:   logger.NewNop(),
		shop: config.Shop{
			ShippingFee: decimal.NewFromInt(1000),
			City:        "Yaounde",
			PageSize:    9,
			Name:        "MomShop",
		},
	}
}

func (f *fixture) product(t *testing.T, name string, buying, selling int64, qty int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "unit", decimal.NewFromInt(buying), decimal.NewFromInt(selling), qty, 2)
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, p))
	return p
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.store.Repos().Products.FindByID(f.ctx, productID)
	require.NoError(t, err)
	return p.Quantity
}

func (f *fixture) customer(t *testing.T, username, phone string) (*user.User, *customer.Customer) {
	t.Helper()
	u, err := user.NewUser(username, username+"@example.com", testPassword, user.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Users.Create(f.ctx, u))
	c, err := customer.NewCustomer(u.ID, "Awa", "Ngono", phone, u.Email, "", "Douala", f.shop.City)
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Customers.Create(f.ctx, c))
	return u, c
}

func (f *fixture) seller(t *testing.T, username, phone string) (*user.User, *seller.Seller) {
	t.Helper()
	u, err := user.NewUser(username, username+"@example.com", testPassword, user.RoleSeller)
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Users.Create(f.ctx, u))
	s, err := seller.NewSeller(u.ID, seller.Profile{Phone: phone, Salary: decimal.NewFromInt(50000)})
	require.NoError(t, err)
	require.NoError(t, f.store.Repos().Sellers.Create(f.ctx, s))
	return u, s
}

func (f *fixture) sellerActor(t *testing.T, username, phone string) (Actor, *seller.Seller) {
	t.Helper()
	u, s := f.seller(t, username, phone)
	return Actor{UserID: u.ID, Role: user.RoleSeller, SellerID: s.ID}, s
}

func adminActor() Actor {
	return Actor{UserID: "admin-user", Role: user.RoleAdmin}
}

func (f *fixture) checkout() *CheckoutService {
	return NewCheckoutService(f.store, f.carts, f.pub, f.shop, f.log)
}

func (f *fixture) fulfillment() *FulfillmentService {
	return NewFulfillmentService(f.store, f.pub, f.shop, f.log)
}

// placeOrder fills a cart for a fresh session and checks it out.
func (f *fixture) placeOrder(t *testing.T, customerID string, lines map[string]int) string {
	t.Helper()
	session := "session-" + customerID
	carts := NewCartService(f.carts, f.store, f.shop.ShippingFee, f.log)
	for productID, qty := range lines {
		_, err := carts.Add(f.ctx, session, productID, qty)
		require.NoError(t, err)
	}
	o, err := f.checkout().PlaceOrder(f.ctx, session, customerID, orderShipping())
	require.NoError(t, err)
	return o.ID
}

func orderShipping() order.Shipping {
	return order.Shipping{Town: "Bastos", Phone: "699000111"}
}
