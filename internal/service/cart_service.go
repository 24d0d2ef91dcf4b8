package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// CartLine is a cart line resolved against the catalog.
type CartLine struct {
	Product   *catalog.Product `json:"product"`
	Quantity  int              `json:"quantity"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

// CartSummary is the priced view of a cart.
type CartSummary struct {
	Lines       []CartLine      `json:"lines"`
	Count       int             `json:"count"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	Total       decimal.Decimal `json:"total"`
}

type CartService struct {
	carts       cart.Store
	store       store.Store
	shippingFee decimal.Decimal
	logger      logger.Logger
}

func NewCartService(carts cart.Store, st store.Store, shippingFee decimal.Decimal, log logger.Logger) *CartService {
	return &CartService{
		carts:       carts,
		store:       st,
		shippingFee: shippingFee,
		logger:      log,
	}
}

// Add puts qty units of an existing product in the session's cart.
func (s *CartService) Add(ctx context.Context, sessionID, productID string, qty int) (*cart.Cart, error) {
	if _, err := s.store.Repos().Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Add(productID, qty)
	})
}

// Update sets a line's quantity; zero or less removes it.
func (s *CartService) Update(ctx context.Context, sessionID, productID string, qty int) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		return c.Update(productID, qty)
	})
}

func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("error clearing cart: %w", err)
	}
	return nil
}

// Count is the number of units in the cart.
func (s *CartService) Count(ctx context.Context, sessionID string) (int, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

// Snapshot prices the cart with current selling prices. Lines whose product
// disappeared are skipped. An empty cart costs nothing, shipping included.
func (s *CartService) Snapshot(ctx context.Context, sessionID string) (*CartSummary, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{
		Lines:       []CartLine{},
		Subtotal:    decimal.Zero,
		ShippingFee: decimal.Zero,
		Total:       decimal.Zero,
	}

	products := s.store.Repos().Products
	for _, l := range c.Lines {
		p, err := products.FindByID(ctx, l.ProductID)
		if err != nil {
			if !errors.Is(err, catalog.ErrProductNotFound) {
				return nil, err
			}
			s.logger.Warn("cart line skipped, product not found", "session_id", sessionID, "product_id", l.ProductID)
			continue
		}
		lineTotal := p.SellingPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		summary.Lines = append(summary.Lines, CartLine{Product: p, Quantity: l.Quantity, LineTotal: lineTotal})
		summary.Subtotal = summary.Subtotal.Add(lineTotal)
		summary.Count += l.Quantity
	}

	if len(summary.Lines) > 0 {
		summary.ShippingFee = s.shippingFee
		summary.Total = summary.Subtotal.Add(s.shippingFee)
	}
	return summary, nil
}

func (s *CartService) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}
