package dto

// SaleLineRequest is one product rung up at the counter
type SaleLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// SaleRequest is a counter sale. IsCompleted false records an unpaid credit;
// a missing value means paid.
type SaleRequest struct {
	Lines         []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method"`
	IsCompleted   *bool             `json:"is_completed"`
}

// Completed reports whether the sale is paid
func (r SaleRequest) Completed() bool {
	return r.IsCompleted == nil || *r.IsCompleted
}
