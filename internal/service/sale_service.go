package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// SaleLine is one product rung up at the counter.
type SaleLine struct {
	ProductID string
	Quantity  int
}

// SaleInput is a counter sale of one or more products.
type SaleInput struct {
	Lines         []SaleLine
	PaymentMethod sale.PaymentMethod
	IsCompleted   bool
}

// SaleService records counter (POS) sales.
type SaleService struct {
	store     store.Store
	publisher messaging.Publisher
	logger    logger.Logger
}

func NewSaleService(st store.Store, publisher messaging.Publisher, log logger.Logger) *SaleService {
	return &SaleService{store: st, publisher: publisher, logger: log}
}

// Record stores one sale per line. Completed sales take the units out of
// stock; a line the shelf cannot fully serve rejects the whole sale and
// puts back anything already taken. Credit sales leave stock alone until
// they are settled.
func (s *SaleService) Record(ctx context.Context, actor Actor, in SaleInput) ([]*sale.Sale, error) {
	if len(in.Lines) == 0 {
		return nil, ErrNoSaleLines
	}
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, catalog.ErrInvalidQuantity
		}
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = sale.PaymentCash
	}
	if !in.PaymentMethod.Valid() {
		return nil, sale.ErrInvalidPaymentMethod
	}

	var sales []*sale.Sale
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		sel, err := resolveSeller(ctx, repos, actor)
		if err != nil {
			return err
		}

		sales = make([]*sale.Sale, 0, len(in.Lines))
		for _, l := range in.Lines {
			p, err := repos.Products.FindByID(ctx, l.ProductID)
			if err != nil {
				return err
			}

			qty := l.Quantity
			if in.IsCompleted {
				qty, err = repos.Products.DecrementStock(ctx, p.ID, l.Quantity)
				if err != nil {
					return err
				}
				if qty < l.Quantity {
					return fmt.Errorf("%s: %d of %d available: %w", p.Name, qty, l.Quantity, ErrOutOfStock)
				}
			}

			amount := p.SellingPrice.Mul(decimal.NewFromInt(int64(qty)))
			sl, err := sale.NewSale(sel.ID, p.ID, qty, amount, in.PaymentMethod, in.IsCompleted)
			if err != nil {
				return err
			}
			sl.ProductName = p.Name
			if err := repos.Sales.Create(ctx, sl); err != nil {
				return err
			}
			sales = append(sales, sl)
		}
		return nil
	})
	if err != nil {
		return nil, txError("record sale", err)
	}

	s.logger.Info("sale recorded", "lines", len(sales), "payment_method", string(in.PaymentMethod), "completed", in.IsCompleted)
	if err := s.publisher.Publish(ctx, messaging.EventSaleRecorded, map[string]any{"sales": sales}); err != nil {
		s.logger.Error("failed to publish event", "event", messaging.EventSaleRecorded, "error", err)
	}
	return sales, nil
}

// ListCredits returns unpaid sales: the actor's own for a seller, all for an admin.
func (s *SaleService) ListCredits(ctx context.Context, actor Actor) ([]*sale.Sale, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	f := sale.Filter{OnlyCredits: true}
	if actor.IsSeller() {
		if actor.SellerID == "" {
			return nil, ErrNoSeller
		}
		f.SellerID = actor.SellerID
	}
	return s.store.Repos().Sales.List(ctx, f)
}

// DeleteAll removes every sale.
func (s *SaleService) DeleteAll(ctx context.Context, actor Actor) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	var n int
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		n, err = repos.Sales.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, txError("delete sales", err)
	}
	s.logger.Warn("all sales deleted", "count", n, "by", actor.UserID)
	return n, nil
}
