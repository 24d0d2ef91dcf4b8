package seller

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSellerNotFound  = errors.New("seller not found")
	ErrDuplicatePhone  = errors.New("phone number already used by another seller")
	ErrDuplicateIDCard = errors.New("id card number already used by another seller")
	ErrEmptyPhone      = errors.New("phone number is required")
	ErrNegativeSalary  = errors.New("salary cannot be negative")
	ErrSellerNotActive = errors.New("seller account is deactivated")
)

// Seller is the staff profile attached to a seller user account.
type Seller struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Username     string          `json:"username,omitempty"`
	FirstName    string          `json:"first_name,omitempty"`
	LastName     string          `json:"last_name,omitempty"`
	Email        string          `json:"email,omitempty"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	IDCardNumber string          `json:"id_card_number"`
	Salary       decimal.Decimal `json:"salary"`
	HireDate     time.Time       `json:"hire_date"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Profile carries the editable seller fields.
type Profile struct {
	Phone        string
	Address      string
	IDCardNumber string
	Salary       decimal.Decimal
	HireDate     time.Time
}

// NewSeller builds an active seller for userID.
func NewSeller(userID string, p Profile) (*Seller, error) {
	s := &Seller{
		ID:        uuid.New().String(),
		UserID:    userID,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.Apply(p); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply validates and copies p onto the seller.
func (s *Seller) Apply(p Profile) error {
	phone := strings.TrimSpace(p.Phone)
	if phone == "" {
		return ErrEmptyPhone
	}
	if p.Salary.IsNegative() {
		return ErrNegativeSalary
	}
	hire := p.HireDate
	if hire.IsZero() {
		hire = time.Now()
	}

	s.Phone = phone
	s.Address = p.Address
	s.IDCardNumber = strings.TrimSpace(p.IDCardNumber)
	s.Salary = p.Salary
	s.HireDate = hire
	s.UpdatedAt = time.Now()
	return nil
}

// StatusFilter restricts seller listings by active flag.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// Filter narrows seller listings.
type Filter struct {
	Search string
	Status StatusFilter
}
