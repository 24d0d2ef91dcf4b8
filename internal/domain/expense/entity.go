package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidType     = errors.New("invalid expense type")
	ErrInvalidAmount   = errors.New("expense amount must be at least 0.01")
	ErrEmptyDesc       = errors.New("description is required")
)

// Type classifies an expense.
type Type string

const (
	TypeTransport   Type = "transport"
	TypeElectricity Type = "electricity"
	TypeRent        Type = "rent"
	TypeSalary      Type = "salary"
	TypeMaintenance Type = "maintenance"
	TypeOther       Type = "other"
)

// Types lists every accepted expense type.
var Types = []Type{TypeTransport, TypeElectricity, TypeRent, TypeSalary, TypeMaintenance, TypeOther}

func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Expense is money spent running the shop.
type Expense struct {
	ID          string          `json:"id"`
	Number      string          `json:"expenses_number"`
	Type        Type            `json:"expenses_type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"expenses_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewExpense validates and builds an expense.
func NewExpense(t Type, description string, amount decimal.Decimal, date time.Time) (*Expense, error) {
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDesc
	}
	if amount.LessThan(decimal.New(1, -2)) {
		return nil, ErrInvalidAmount
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Expense{
		ID:          uuid.New().String(),
		Number:      uuid.New().String(),
		Type:        t,
		Description: description,
		Amount:      amount,
		Date:        date,
		CreatedAt:   time.Now(),
	}, nil
}

// Filter narrows expense listings. Zero dates are open bounds; To is inclusive.
type Filter struct {
	Type Type
	From time.Time
	To   time.Time
}
