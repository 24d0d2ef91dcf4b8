package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/order"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// Outcome tells how much of an order line could be served.
type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomePartial   Outcome = "partial"
	OutcomeStockout  Outcome = "stockout"
)

func outcomeOf(requested, fulfilled int) Outcome {
	switch {
	case fulfilled <= 0:
		return OutcomeStockout
	case fulfilled < requested:
		return OutcomePartial
	default:
		return OutcomeFulfilled
	}
}

// LineResult reports the fulfillment of one order item.
type LineResult struct {
	ItemID      string          `json:"item_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Requested   int             `json:"requested"`
	Fulfilled   int             `json:"fulfilled"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Outcome     Outcome         `json:"outcome"`
}

// Result is the outcome of processing an order.
type Result struct {
	Order            *order.Order    `json:"order"`
	Lines            []LineResult    `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	ShippingDropped  bool            `json:"shipping_dropped"`
	SalesCreated     int             `json:"sales_created"`
	AlreadyProcessed bool            `json:"already_processed"`
}

// FulfillmentService ships pending orders out of stock and records the
// resulting sales.
type FulfillmentService struct {
	store        store.Store
	publisher    messaging.Publisher
	keepShipping bool
	logger       logger.Logger
}

func NewFulfillmentService(st store.Store, publisher messaging.Publisher, shop config.Shop, log logger.Logger) *FulfillmentService {
	return &FulfillmentService{
		store:        st,
		publisher:    publisher,
		keepShipping: shop.KeepShippingOnFulfillment,
		logger:       log,
	}
}

// Process fulfills every item of the order as far as stock allows, in one
// transaction. Each item keeps the quantity actually served and yields one
// cash sale when at least one unit left the shop. A processed order is
// returned untouched together with ErrAlreadyProcessed.
func (s *FulfillmentService) Process(ctx context.Context, orderID string, actor Actor) (*Result, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	var res *Result
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		o, err := repos.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o.IsProcessed {
			res = &Result{Order: o, Lines: []LineResult{}, Total: o.TotalAmount, AlreadyProcessed: true}
			return nil
		}

		sel, err := resolveSeller(ctx, repos, actor)
		if err != nil {
			return err
		}

		res, err = s.fulfill(ctx, repos, o, sel.ID)
		return err
	})
	if err != nil {
		return nil, txError("process order", err)
	}

	if res.AlreadyProcessed {
		s.logger.Info("order already processed", "order_number", res.Order.Number)
		return res, ErrAlreadyProcessed
	}

	s.logger.Info("order processed",
		"order_number", res.Order.Number,
		"total", res.Total.String(),
		"sales", res.SalesCreated,
		"shipping_dropped", res.ShippingDropped)
	s.publish(ctx, res)
	return res, nil
}

func (s *FulfillmentService) fulfill(ctx context.Context, repos store.Repositories, o *order.Order, sellerID string) (*Result, error) {
	items := make([]*order.Item, len(o.Items))
	copy(items, o.Items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].ID < items[j].ID
	})

	res := &Result{Order: o, Lines: make([]LineResult, 0, len(items))}
	total := decimal.Zero
	shipped := 0

	for _, it := range items {
		requested := it.RequestedQuantity
		if requested <= 0 {
			requested = it.Quantity
		}

		actual, err := repos.Products.DecrementStock(ctx, it.ProductID, requested)
		if err != nil {
			return nil, err
		}
		if err := repos.Orders.UpdateItemQuantity(ctx, it.ID, actual); err != nil {
			return nil, err
		}
		it.Quantity = actual

		line := LineResult{
			ItemID:      it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Requested:   requested,
			Fulfilled:   actual,
			UnitPrice:   it.PriceAtPurchase,
			LineTotal:   it.LineTotal(),
			Outcome:     outcomeOf(requested, actual),
		}

		if actual > 0 {
			sl, err := sale.NewSale(sellerID, it.ProductID, actual, line.LineTotal, sale.PaymentCash, true)
			if err != nil {
				return nil, err
			}
			sl.OrderID = o.ID
			sl.ProductName = it.ProductName
			if err := repos.Sales.Create(ctx, sl); err != nil {
				return nil, err
			}
			res.SalesCreated++
			total = total.Add(line.LineTotal)
			shipped += actual
		}
		res.Lines = append(res.Lines, line)
	}

	if s.keepShipping && shipped > 0 {
		total = total.Add(o.ShippingFee)
	} else {
		res.ShippingDropped = o.ShippingFee.IsPositive()
	}

	o.MarkProcessed(total)
	if err := repos.Orders.MarkProcessed(ctx, o); err != nil {
		return nil, err
	}
	res.Total = total
	return res, nil
}

func (s *FulfillmentService) publish(ctx context.Context, res *Result) {
	evt := map[string]any{
		"order_id":      res.Order.ID,
		"order_number":  res.Order.Number,
		"total_amount":  res.Total,
		"sales_created": res.SalesCreated,
		"lines":         res.Lines,
	}
	if err := s.publisher.Publish(ctx, messaging.EventOrderProcessed, evt); err != nil {
		s.logger.Error("failed to publish event", "event", messaging.EventOrderProcessed, "error", err)
	}
}
