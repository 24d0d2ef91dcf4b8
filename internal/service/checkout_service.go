package service

import (
	"context"
	"errors"
	"strings"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/domain/customer"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// maxNumberAttempts bounds retries after an order number collision.
const maxNumberAttempts = 3

// CheckoutService turns a session cart into a pending order.
type CheckoutService struct {
	store     store.Store
	carts     cart.Store
	publisher messaging.Publisher
	shop      config.Shop
	logger    logger.Logger
}

func NewCheckoutService(st store.Store, carts cart.Store, publisher messaging.Publisher, shop config.Shop, log logger.Logger) *CheckoutService {
	return &CheckoutService{
		store:     st,
		carts:     carts,
		publisher: publisher,
		shop:      shop,
		logger:    log,
	}
}

// PlaceOrder creates one pending order holding every cart line at the
// current selling price, then empties the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, customerID string, shipping order.Shipping) (*order.Order, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}

	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, &PersistenceError{Op: "load cart", Err: err}
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	var o *order.Order
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		o, err = s.placeOnce(ctx, c, customerID, shipping)
		if !errors.Is(err, order.ErrDuplicateNumber) {
			break
		}
		s.logger.Warn("order number collision, retrying", "attempt", attempt)
	}
	if err != nil {
		return nil, txError("place order", err)
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("order placed but cart not cleared", "order_number", o.Number, "error", err)
	}

	s.logger.Info("order placed", "order_number", o.Number, "items", len(o.Items), "total", o.TotalAmount.String())
	s.publish(ctx, o)
	return o, nil
}

func (s *CheckoutService) placeOnce(ctx context.Context, c *cart.Cart, customerID string, shipping order.Shipping) (*order.Order, error) {
	var o *order.Order
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		cust, err := repos.Customers.FindByID(ctx, customerID)
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return ErrUnauthenticated
		}
		if err != nil {
			return err
		}

		o = order.NewOrder(customerID, s.shippingFor(cust, shipping), s.shop.ShippingFee)
		for _, l := range c.Lines {
			p, err := repos.Products.FindByID(ctx, l.ProductID)
			if err != nil {
				return err
			}
			item, err := o.AddItem(p.ID, l.Quantity, p.SellingPrice)
			if err != nil {
				return err
			}
			item.ProductName = p.Name
		}
		o.CalculateTotal()

		return repos.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// shippingFor fills blank destination fields from the customer profile and
// the shop's city.
func (s *CheckoutService) shippingFor(c *customer.Customer, in order.Shipping) order.Shipping {
	out := order.Shipping{
		City:  strings.TrimSpace(in.City),
		Town:  strings.TrimSpace(in.Town),
		Phone: strings.TrimSpace(in.Phone),
	}
	if out.City == "" {
		out.City = c.City
	}
	if out.City == "" {
		out.City = s.shop.City
	}
	if out.Phone == "" {
		out.Phone = c.Phone
	}
	return out
}

func (s *CheckoutService) publish(ctx context.Context, o *order.Order) {
	evt := map[string]any{
		"order_id":     o.ID,
		"order_number": o.Number,
		"customer_id":  o.CustomerID,
		"total_amount": o.TotalAmount,
		"items":        len(o.Items),
		"order_date":   o.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, messaging.EventOrderPlaced, evt); err != nil {
		s.logger.Error("failed to publish event", "event", messaging.EventOrderPlaced, "error", err)
	}
}
