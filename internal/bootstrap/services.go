package bootstrap

import (
	"github.com/VS237/momshop/internal/adapter/export"
	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/cart"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/assistant"
	"github.com/VS237/momshop/pkg/logger"
)

// Services is every business service wired to the same store.
type Services struct {
	Auth        *service.AuthService
	Catalog     *service.CatalogService
	Cart        *service.CartService
	Checkout    *service.CheckoutService
	Orders      *service.OrderService
	Fulfillment *service.FulfillmentService
	Sales       *service.SaleService
	Reports     *service.ReportService
	Dashboard   *service.DashboardService
	Sellers     *service.SellerService
	Expenses    *service.ExpenseService
	Assistant   *assistant.Client
}

func NewServices(
	cfg config.Config,
	st store.Store,
	carts cart.Store,
	pub messaging.Publisher,
	tokens service.TokenIssuer,
	log logger.Logger,
) *Services {
	catalog := service.NewCatalogService(st, cfg.Shop.PageSize, cfg.Shop.City, log)

	return &Services{
		Auth:        service.NewAuthService(st, tokens, cfg.Shop.City, log),
		Catalog:     catalog,
		Cart:        service.NewCartService(carts, st, cfg.Shop.ShippingFee, log),
		Checkout:    service.NewCheckoutService(st, carts, pub, cfg.Shop, log),
		Orders:      service.NewOrderService(st, log),
		Fulfillment: service.NewFulfillmentService(st, pub, cfg.Shop, log),
		Sales:       service.NewSaleService(st, pub, log),
		Reports:     service.NewReportService(st, export.NewExcelReportWriter(), pub, log),
		Dashboard:   service.NewDashboardService(st, log),
		Sellers:     service.NewSellerService(st, log),
		Expenses:    service.NewExpenseService(st, log),
		Assistant: assistant.NewClient(assistant.Config{
			APIKey:   cfg.Assistant.APIKey,
			BaseURL:  cfg.Assistant.BaseURL,
			Model:    cfg.Assistant.Model,
			Timeout:  cfg.Assistant.Timeout,
			ShopName: cfg.Shop.Name,
			Facts:    cfg.Assistant.Facts,
			Support:  cfg.Assistant.Support,
			Referer:  cfg.Assistant.Referer,
		}, st.Repos().Chat, catalog, log),
	}
}
