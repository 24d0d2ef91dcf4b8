// Package store ties the domain repositories together behind a single
// transactional entry point, so services can span several aggregates in
// one all-or-nothing unit of work.
package store

import (
	"context"
	"fmt"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/pkg/chat"
)

// Driver names accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Repositories is the set of repositories bound to one connection or transaction.
type Repositories struct {
	Products   catalog.Repository
	Categories catalog.CategoryRepository
	Suppliers  catalog.SupplierRepository
	Orders     order.Repository
	Sales      sale.Repository
	Reports    sale.ReportRepository
	Users      user.Repository
	Customers  customer.Repository
	Sellers    seller.Repository
	Expenses   expense.Repository
	Chat       chat.Repository
}

// TxFunc is the body of a transaction. The repositories it receives are
// bound to the transaction and must not escape it.
type TxFunc func(ctx context.Context, repos Repositories) error

// Store gives access to repositories outside and inside transactions.
type Store interface {
	// Repos returns repositories that run each call on its own.
	Repos() Repositories

	// WithinTransaction runs fn in a transaction, committing when fn returns
	// nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn TxFunc) error

	// Ping checks the backing storage is reachable.
	Ping(ctx context.Context) error

	Close()
}

// ErrUnknownDriver is returned for an unsupported STORE_DRIVER value.
type ErrUnknownDriver struct {
	Driver string
}

func (e *ErrUnknownDriver) Error() string {
	return fmt.Sprintf("unknown store driver %q (want %s or %s)", e.Driver, DriverPostgres, DriverMemory)
}
