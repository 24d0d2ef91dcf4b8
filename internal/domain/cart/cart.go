package cart

import (
	"errors"
	"time"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrEmptyProductID  = errors.New("product id cannot be empty")
)

// Line is one product selection in a cart.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the pending purchase selection of a single session. Lines keep
// the order in which products were first added.
type Cart struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// Add puts qty more units of productID in the cart.
func (c *Cart) Add(productID string, qty int) error {
	if productID == "" {
		return ErrEmptyProductID
	}
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(productID); i >= 0 {
		c.Lines[i].Quantity += qty
	} else {
		c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: qty})
	}
	c.touch()
	return nil
}

// Update sets the quantity of productID. A quantity of zero or less removes the line.
func (c *Cart) Update(productID string, qty int) error {
	if productID == "" {
		return ErrEmptyProductID
	}
	if qty <= 0 {
		c.Remove(productID)
		return nil
	}

	if i := c.indexOf(productID); i >= 0 {
		c.Lines[i].Quantity = qty
	} else {
		c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: qty})
	}
	c.touch()
	return nil
}

// Remove drops the line for productID if present.
func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.touch()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.touch()
}

// Quantity returns the units of productID in the cart.
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	return len(c.Lines)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
