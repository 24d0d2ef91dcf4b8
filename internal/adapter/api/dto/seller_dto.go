package dto

import (
	"github.com/shopspring/decimal"
)

// SellerRequest opens or edits a seller. Username and password are only read
// on creation.
type SellerRequest struct {
	Username     string          `json:"username"`
	Password     string          `json:"password"`
	Email        string          `json:"email" binding:"omitempty,email"`
	FirstName    string          `json:"first_name" binding:"required"`
	LastName     string          `json:"last_name" binding:"required"`
	Phone        string          `json:"phone" binding:"required"`
	Address      string          `json:"address"`
	IDCardNumber string          `json:"id_card_number"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     string          `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
}
