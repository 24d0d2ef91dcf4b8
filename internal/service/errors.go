// Package service holds the use cases of the shop. Services coordinate the
// repositories inside store transactions and publish events after commit.
package service

import (
	"errors"
	"fmt"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAlreadyProcessed   = errors.New("order already processed")
	ErrNoSales            = errors.New("no completed sales for this day")
	ErrForbidden          = errors.New("operation not allowed for this user")
	ErrNoSeller           = errors.New("no active seller available")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrNoSaleLines        = errors.New("sale must have at least one line")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PersistenceError reports a failed transaction. Nothing the operation
// attempted was kept.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// businessErrors pass through transactions unwrapped; anything else is
// reported as a PersistenceError.
var businessErrors = []error{
	ErrEmptyCart, ErrUnauthenticated, ErrAlreadyProcessed, ErrNoSales, ErrForbidden,
	ErrNoSeller, ErrOutOfStock, ErrNoSaleLines, ErrAccountDisabled, ErrInvalidCredentials,
	catalog.ErrProductNotFound, catalog.ErrCategoryNotFound, catalog.ErrSupplierNotFound,
	catalog.ErrEmptyName, catalog.ErrInvalidPrice, catalog.ErrPriceBelowCost, catalog.ErrInvalidQuantity,
	catalog.ErrProductInUse,
	order.ErrOrderNotFound, order.ErrNoItems, order.ErrInvalidItemQuantity,
	sale.ErrSaleNotFound, sale.ErrReportNotFound, sale.ErrInvalidPaymentMethod, sale.ErrInvalidAmount,
	user.ErrUserNotFound, user.ErrDuplicateUsername, user.ErrDuplicateEmail, user.ErrEmptyUsername,
	user.ErrPasswordTooShort, user.ErrInvalidRole,
	customer.ErrCustomerNotFound, customer.ErrDuplicatePhone, customer.ErrEmptyName, customer.ErrEmptyPhone,
	seller.ErrSellerNotFound, seller.ErrDuplicatePhone, seller.ErrDuplicateIDCard, seller.ErrEmptyPhone,
	seller.ErrNegativeSalary, seller.ErrSellerNotActive,
	expense.ErrExpenseNotFound, expense.ErrInvalidType, expense.ErrInvalidAmount, expense.ErrEmptyDesc,
}

// IsBusinessError reports whether err is an expected domain outcome rather
// than an infrastructure failure.
func IsBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func txError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) || IsBusinessError(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
