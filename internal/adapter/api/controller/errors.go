package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/assistant"
	"github.com/VS237/momshop/pkg/auth"
	"github.com/VS237/momshop/pkg/logger"
)

type errorMapping struct {
	status  int
	message string
	errs    []error
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{http.StatusBadRequest, "Invalid data", []error{
		catalog.ErrEmptyName, catalog.ErrInvalidPrice, catalog.ErrPriceBelowCost, catalog.ErrInvalidQuantity,
		cart.ErrInvalidQuantity, cart.ErrEmptyProductID,
		order.ErrNoItems, order.ErrInvalidItemQuantity,
		sale.ErrInvalidPaymentMethod, sale.ErrInvalidAmount, service.ErrNoSaleLines,
		user.ErrEmptyUsername, user.ErrPasswordTooShort, user.ErrInvalidRole,
		customer.ErrEmptyName, customer.ErrEmptyPhone,
		seller.ErrEmptyPhone, seller.ErrNegativeSalary,
		expense.ErrInvalidType, expense.ErrInvalidAmount, expense.ErrEmptyDesc,
		assistant.ErrEmptyMessage,
	}},
	{http.StatusUnauthorized, "Authentication required", []error{
		service.ErrUnauthenticated,
	}},
	{http.StatusUnauthorized, "Invalid credentials", []error{
		service.ErrInvalidCredentials, auth.ErrInvalidToken, auth.ErrExpiredToken, auth.ErrInvalidClaims,
	}},
	{http.StatusForbidden, "Access denied", []error{
		service.ErrForbidden, service.ErrAccountDisabled, seller.ErrSellerNotActive,
	}},
	{http.StatusNotFound, "Not found", []error{
		catalog.ErrProductNotFound, catalog.ErrCategoryNotFound, catalog.ErrSupplierNotFound,
		order.ErrOrderNotFound, sale.ErrSaleNotFound, sale.ErrReportNotFound,
		user.ErrUserNotFound, customer.ErrCustomerNotFound, seller.ErrSellerNotFound,
		expense.ErrExpenseNotFound,
	}},
	{http.StatusConflict, "Conflict", []error{
		user.ErrDuplicateUsername, user.ErrDuplicateEmail,
		customer.ErrDuplicatePhone, seller.ErrDuplicatePhone, seller.ErrDuplicateIDCard,
		order.ErrDuplicateNumber, catalog.ErrProductInUse,
		service.ErrOutOfStock, service.ErrNoSeller,
	}},
	{http.StatusUnprocessableEntity, "Nothing to process", []error{
		service.ErrEmptyCart, service.ErrNoSales,
	}},
	{http.StatusServiceUnavailable, "Service unavailable", []error{
		assistant.ErrNotConfigured,
	}},
}

// statusFor maps an error to its HTTP status and a short message.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		for _, target := range m.errs {
			if errors.Is(err, target) {
				return m.status, m.message
			}
		}
	}
	return http.StatusInternalServerError, "Internal error"
}

// respondError writes err as a dto.ErrorResponse. Server errors are logged
// and their details hidden.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	status, message := statusFor(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		var pe *service.PersistenceError
		if errors.As(err, &pe) {
			message = "Could not save changes"
		}
		log.Error("request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		details = ""
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, details))
}

func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request", err.Error()))
}
