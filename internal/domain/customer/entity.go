package customer

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicatePhone   = errors.New("phone number already registered")
	ErrEmptyName        = errors.New("first and last name are required")
	ErrEmptyPhone       = errors.New("phone number is required")
)

// Type classifies how often a customer buys.
type Type string

const (
	TypeRegular    Type = "regular"
	TypeOccasional Type = "occasional"
	TypeWholesale  Type = "wholesale"
)

// Customer is the shopper profile attached to a customer user account.
type Customer struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	CustomerType Type            `json:"customer_type"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewCustomer builds an occasional customer. An empty city falls back to defaultCity.
func NewCustomer(userID, firstName, lastName, phone, email, address, city, defaultCity string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrEmptyName
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrEmptyPhone
	}
	if strings.TrimSpace(city) == "" {
		city = defaultCity
	}

	return &Customer{
		ID:           uuid.New().String(),
		UserID:       userID,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Address:      address,
		City:         city,
		CustomerType: TypeOccasional,
		CreditLimit:  decimal.Zero,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// FullName returns "first last".
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
