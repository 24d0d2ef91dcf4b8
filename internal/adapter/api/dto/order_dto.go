package dto

import (
	"github.com/VS237/momshop/internal/domain/order"
)

// CheckoutRequest is the delivery destination. Blank fields fall back to the
// customer profile.
type CheckoutRequest struct {
	City  string `json:"city"`
	Town  string `json:"town"`
	Phone string `json:"phone"`
}

// Shipping converts the request
func (r CheckoutRequest) Shipping() order.Shipping {
	return order.Shipping{City: r.City, Town: r.Town, Phone: r.Phone}
}

// OrderListResponse lists orders with the total pending count
type OrderListResponse struct {
	Orders []*order.Order `json:"orders"`
	Count  int            `json:"count"`
}

// ProcessOrderResponse reports an order fulfillment
type ProcessOrderResponse struct {
	Message          string      `json:"message"`
	AlreadyProcessed bool        `json:"already_processed"`
	Result           interface{} `json:"result"`
}

// NewOrderListResponse never returns a nil slice
func NewOrderListResponse(orders []*order.Order, count int) OrderListResponse {
	if orders == nil {
		orders = []*order.Order{}
	}
	return OrderListResponse{Orders: orders, Count: count}
}
