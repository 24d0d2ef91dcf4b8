package service

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

const (
	chartDays       = 15
	kpiDays         = 30
	topProductLimit = 5
	recentSales     = 10
	lowStockLimit   = 50
)

// Names of the figures a dashboard reports as degraded when their read fails.
const (
	kpiDailySales    = "daily_sales"
	kpiTopProducts   = "top_products"
	kpiTotalSales    = "total_sales"
	kpiTotalExpenses = "total_expenses"
	kpiGrossProfit   = "gross_profit"
	kpiActiveSellers = "active_sellers"
	kpiLowStock      = "low_stock"
	kpiPendingOrders = "pending_orders"
	kpiToday         = "today"
	kpiMonth         = "month"
	kpiRecentSales   = "recent_sales"
	kpiCredits       = "credits"
)

// AdminDashboard holds the back-office KPIs.
type AdminDashboard struct {
	DailySales    []sale.DailyPoint `json:"daily_sales"`
	TopProducts   []sale.TopProduct `json:"top_products"`
	TotalSales    decimal.Decimal   `json:"total_sales_30d"`
	TotalExpenses decimal.Decimal   `json:"total_expenses_30d"`
	GrossProfit   decimal.Decimal   `json:"gross_profit_30d"`
	NetProfit     decimal.Decimal   `json:"net_profit_30d"`
	ActiveSellers int               `json:"active_sellers"`
	LowStock      int               `json:"low_stock_count"`
	PendingOrders int               `json:"pending_orders"`
	Degraded      []string          `json:"degraded,omitempty"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// SellerDashboard holds a seller's figures for today and this month.
type SellerDashboard struct {
	TodayTotal  decimal.Decimal    `json:"today_total"`
	TodayCount  int                `json:"today_count"`
	MonthTotal  decimal.Decimal    `json:"month_total"`
	RecentSales []*sale.Sale       `json:"recent_sales"`
	Credits     []*sale.Sale       `json:"active_credits"`
	LowStock    []*catalog.Product `json:"low_stock"`
	Degraded    []string           `json:"degraded,omitempty"`
}

type DashboardService struct {
	store  store.Store
	logger logger.Logger
}

func NewDashboardService(st store.Store, log logger.Logger) *DashboardService {
	return &DashboardService{store: st, logger: log}
}

// kpiGroup reads dashboard figures concurrently. A failed read leaves its
// figure empty and is listed as degraded; only cancellation of the caller's
// context fails the whole dashboard.
type kpiGroup struct {
	g        *errgroup.Group
	ctx      context.Context
	log      logger.Logger
	mu       sync.Mutex
	degraded []string
}

func newKPIGroup(ctx context.Context, log logger.Logger) *kpiGroup {
	g, gctx := errgroup.WithContext(ctx)
	return &kpiGroup{g: g, ctx: gctx, log: log}
}

func (k *kpiGroup) Go(name string, read func(ctx context.Context) error) {
	k.g.Go(func() error {
		err := read(k.ctx)
		if err == nil {
			return nil
		}
		if ctxErr := k.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		k.log.Warn("dashboard figure unavailable", "kpi", name, "error", err)
		k.mu.Lock()
		k.degraded = append(k.degraded, name)
		k.mu.Unlock()
		return nil
	})
}

// Wait returns the sorted names of the figures that could not be read.
func (k *kpiGroup) Wait() ([]string, error) {
	if err := k.g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(k.degraded)
	return k.degraded, nil
}

// Admin computes the back-office KPIs concurrently.
func (s *DashboardService) Admin(ctx context.Context, now time.Time) (*AdminDashboard, error) {
	repos := s.store.Repos()
	today, tomorrow := sale.DayBounds(now)
	chartFrom := today.AddDate(0, 0, -(chartDays - 1))
	kpiFrom := today.AddDate(0, 0, -kpiDays)

	d := &AdminDashboard{GeneratedAt: now}

	k := newKPIGroup(ctx, s.logger)
	k.Go(kpiDailySales, func(ctx context.Context) error {
		points, err := repos.Sales.DailyTotals(ctx, sale.Filter{From: chartFrom, To: tomorrow, OnlyCompleted: true})
		if err != nil {
			return err
		}
		d.DailySales = fillDays(points, chartFrom, chartDays)
		return nil
	})
	k.Go(kpiTopProducts, func(ctx context.Context) error {
		top, err := repos.Sales.TopProducts(ctx, time.Time{}, tomorrow, topProductLimit)
		if err != nil {
			return err
		}
		d.TopProducts = top
		return nil
	})
	k.Go(kpiTotalSales, func(ctx context.Context) error {
		summary, err := repos.Sales.Summarize(ctx, sale.Filter{From: kpiFrom, To: tomorrow, OnlyCompleted: true})
		if err != nil {
			return err
		}
		d.TotalSales = summary.Total
		return nil
	})
	k.Go(kpiTotalExpenses, func(ctx context.Context) error {
		total, err := repos.Expenses.Total(ctx, kpiFrom, tomorrow)
		if err != nil {
			return err
		}
		d.TotalExpenses = total
		return nil
	})
	k.Go(kpiGrossProfit, func(ctx context.Context) error {
		profit, err := repos.Sales.GrossProfit(ctx, kpiFrom, tomorrow)
		if err != nil {
			return err
		}
		d.GrossProfit = profit
		return nil
	})
	k.Go(kpiActiveSellers, func(ctx context.Context) error {
		n, err := repos.Sellers.CountActive(ctx)
		if err != nil {
			return err
		}
		d.ActiveSellers = n
		return nil
	})
	k.Go(kpiLowStock, func(ctx context.Context) error {
		n, err := repos.Products.CountLowStock(ctx)
		if err != nil {
			return err
		}
		d.LowStock = n
		return nil
	})
	k.Go(kpiPendingOrders, func(ctx context.Context) error {
		n, err := repos.Orders.CountPending(ctx)
		if err != nil {
			return err
		}
		d.PendingOrders = n
		return nil
	})

	degraded, err := k.Wait()
	if err != nil {
		s.logger.Error("error computing admin dashboard", "error", err)
		return nil, err
	}
	d.Degraded = degraded

	if d.DailySales == nil {
		d.DailySales = []sale.DailyPoint{}
	}
	if d.TopProducts == nil {
		d.TopProducts = []sale.TopProduct{}
	}
	// net profit is only meaningful when both of its inputs were read
	if !slices.Contains(degraded, kpiGrossProfit) && !slices.Contains(degraded, kpiTotalExpenses) {
		d.NetProfit = d.GrossProfit.Sub(d.TotalExpenses)
	}
	return d, nil
}

// Seller computes a seller's dashboard.
func (s *DashboardService) Seller(ctx context.Context, sellerID string, now time.Time) (*SellerDashboard, error) {
	if sellerID == "" {
		return nil, ErrNoSeller
	}
	repos := s.store.Repos()
	today, tomorrow := sale.DayBounds(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	d := &SellerDashboard{}

	k := newKPIGroup(ctx, s.logger)
	k.Go(kpiToday, func(ctx context.Context) error {
		summary, err := repos.Sales.Summarize(ctx, sale.Filter{SellerID: sellerID, From: today, To: tomorrow, OnlyCompleted: true})
		if err != nil {
			return err
		}
		d.TodayTotal = summary.Total
		d.TodayCount = summary.Count
		return nil
	})
	k.Go(kpiMonth, func(ctx context.Context) error {
		summary, err := repos.Sales.Summarize(ctx, sale.Filter{SellerID: sellerID, From: monthStart, To: tomorrow, OnlyCompleted: true})
		if err != nil {
			return err
		}
		d.MonthTotal = summary.Total
		return nil
	})
	k.Go(kpiRecentSales, func(ctx context.Context) error {
		sales, err := repos.Sales.List(ctx, sale.Filter{SellerID: sellerID, Limit: recentSales})
		if err != nil {
			return err
		}
		d.RecentSales = sales
		return nil
	})
	k.Go(kpiCredits, func(ctx context.Context) error {
		credits, err := repos.Sales.List(ctx, sale.Filter{SellerID: sellerID, OnlyCredits: true})
		if err != nil {
			return err
		}
		d.Credits = credits
		return nil
	})
	k.Go(kpiLowStock, func(ctx context.Context) error {
		products, _, err := repos.Products.List(ctx, catalog.ProductFilter{LowStockOnly: true, Limit: lowStockLimit})
		if err != nil {
			return err
		}
		d.LowStock = products
		return nil
	})

	degraded, err := k.Wait()
	if err != nil {
		s.logger.Error("error computing seller dashboard", "seller_id", sellerID, "error", err)
		return nil, err
	}
	d.Degraded = degraded

	if d.RecentSales == nil {
		d.RecentSales = []*sale.Sale{}
	}
	if d.Credits == nil {
		d.Credits = []*sale.Sale{}
	}
	if d.LowStock == nil {
		d.LowStock = []*catalog.Product{}
	}
	return d, nil
}

// fillDays returns one point per day starting at from, using zero for days
// without sales.
func fillDays(points []sale.DailyPoint, from time.Time, days int) []sale.DailyPoint {
	byDay := make(map[string]sale.DailyPoint, len(points))
	for _, p := range points {
		byDay[p.Date.Format("2006-01-02")] = p
	}

	out := make([]sale.DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i)
		if p, ok := byDay[day.Format("2006-01-02")]; ok {
			p.Date = day
			out = append(out, p)
			continue
		}
		out = append(out, sale.DailyPoint{Date: day, Total: decimal.Zero})
	}
	return out
}
