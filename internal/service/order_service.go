package service

import (
	"context"

	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// LatestOrdersLimit is how many orders the new-order poll returns.
const LatestOrdersLimit = 5

// OrderService reads and administers orders.
type OrderService struct {
	store  store.Store
	logger logger.Logger
}

func NewOrderService(st store.Store, log logger.Logger) *OrderService {
	return &OrderService{store: st, logger: log}
}

// ListPending returns unprocessed orders, newest first.
func (s *OrderService) ListPending(ctx context.Context) ([]*order.Order, error) {
	return s.store.Repos().Orders.ListPending(ctx, 0)
}

// Latest returns the newest pending orders for the staff poll.
func (s *OrderService) Latest(ctx context.Context) ([]*order.Order, int, error) {
	repos := s.store.Repos()
	orders, err := repos.Orders.ListPending(ctx, LatestOrdersLimit)
	if err != nil {
		return nil, 0, err
	}
	count, err := repos.Orders.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

// Receipt returns an order with its items by public number. Customers can
// only see their own orders.
func (s *OrderService) Receipt(ctx context.Context, number string, actor Actor) (*order.Order, error) {
	if actor.UserID == "" {
		return nil, ErrUnauthenticated
	}
	o, err := s.store.Repos().Orders.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && o.CustomerID != actor.CustomerID {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

// ListForCustomer returns a customer's orders, newest first.
func (s *OrderService) ListForCustomer(ctx context.Context, customerID string, limit, offset int) ([]*order.Order, error) {
	if customerID == "" {
		return nil, ErrUnauthenticated
	}
	return s.store.Repos().Orders.ListByCustomer(ctx, customerID, limit, offset)
}

// ClearAll deletes every order and item.
func (s *OrderService) ClearAll(ctx context.Context, actor Actor) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	var n int
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		n, err = repos.Orders.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, txError("delete orders", err)
	}
	s.logger.Warn("all orders deleted", "count", n, "by", actor.UserID)
	return n, nil
}
