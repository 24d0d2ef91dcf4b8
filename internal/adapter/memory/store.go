// Package memory is a process-local implementation of store.Store. It backs
// the test suites and STORE_DRIVER=memory deployments.
//
// Transactions are serialized: the store lock is held for the whole body,
// which runs against a private copy of the data that replaces the live copy
// only when the body succeeds.
package memory

import (
	"context"
	"sync"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/chat"
)

type state struct {
	seq  int64
	rank map[string]int64

	products   map[string]catalog.Product
	categories map[string]catalog.Category
	suppliers  map[string]catalog.Supplier
	orders     map[string]order.Order
	items      map[string]order.Item
	sales      map[string]sale.Sale
	reports    map[string]sale.Report
	users      map[string]user.User
	customers  map[string]customer.Customer
	sellers    map[string]seller.Seller
	expenses   map[string]expense.Expense
	messages   []chat.Message
}

func newState() *state {
	return &state{
		rank:       map[string]int64{},
		products:   map[string]catalog.Product{},
		categories: map[string]catalog.Category{},
		suppliers:  map[string]catalog.Supplier{},
		orders:     map[string]order.Order{},
		items:      map[string]order.Item{},
		sales:      map[string]sale.Sale{},
		reports:    map[string]sale.Report{},
		users:      map[string]user.User{},
		customers:  map[string]customer.Customer{},
		sellers:    map[string]seller.Seller{},
		expenses:   map[string]expense.Expense{},
	}
}

func (st *state) clone() *state {
	c := &state{
		seq:        st.seq,
		rank:       copyMap(st.rank),
		products:   copyMap(st.products),
		categories: copyMap(st.categories),
		suppliers:  copyMap(st.suppliers),
		orders:     copyMap(st.orders),
		items:      copyMap(st.items),
		sales:      copyMap(st.sales),
		reports:    copyMap(st.reports),
		users:      copyMap(st.users),
		customers:  copyMap(st.customers),
		sellers:    copyMap(st.sellers),
		expenses:   copyMap(st.expenses),
	}
	c.messages = append([]chat.Message(nil), st.messages...)
	return c
}

// stamp records insertion order for id, used for "newest first" listings.
func (st *state) stamp(id string) {
	st.seq++
	st.rank[id] = st.seq
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// access runs repository bodies against either the live state (taking the
// store lock) or a transaction's private state (lock already held).
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type lockedAccess struct {
	s *Store
}

func (a lockedAccess) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.data)
}

func (a lockedAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.data)
}

type txAccess struct {
	st *state
}

func (a txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

// Store is an in-memory store.Store.
type Store struct {
	mu   sync.RWMutex
	data *state
}

var _ store.Store = (*Store)(nil)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) Repos() store.Repositories {
	return reposFor(lockedAccess{s: s})
}

func (s *Store) WithinTransaction(ctx context.Context, fn store.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.data.clone()
	if err := fn(ctx, reposFor(txAccess{st: tx})); err != nil {
		return err
	}
	s.data = tx
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}

func reposFor(a access) store.Repositories {
	return store.Repositories{
		Products:   &productRepo{db: a},
		Categories: &categoryRepo{db: a},
		Suppliers:  &supplierRepo{db: a},
		Orders:     &orderRepo{db: a},
		Sales:      &saleRepo{db: a},
		Reports:    &reportRepo{db: a},
		Users:      &userRepo{db: a},
		Customers:  &customerRepo{db: a},
		Sellers:    &sellerRepo{db: a},
		Expenses:   &expenseRepo{db: a},
		Chat:       &chatRepo{db: a},
	}
}
