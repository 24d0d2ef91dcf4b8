package dto

import (
	"github.com/shopspring/decimal"
)

// ExpenseRequest records an operating expense
type ExpenseRequest struct {
	Type        string          `json:"expenses_type" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"expenses_date" binding:"omitempty,datetime=2006-01-02"`
}
