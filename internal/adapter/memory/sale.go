package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/sale"
)

type saleRepo struct {
	db access
}

func matchSale(s sale.Sale, f sale.Filter) bool {
	if f.SellerID != "" && s.SellerID != f.SellerID {
		return false
	}
	if f.OnlyCompleted && !s.IsCompleted {
		return false
	}
	if f.OnlyCredits && s.IsCompleted {
		return false
	}
	return inRange(s.SaleDate, f.From, f.To)
}

// inRange reports whether t is in [from, to), zero bounds being open.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func (st *state) matchingSales(f sale.Filter) []sale.Sale {
	var out []sale.Sale
	for _, s := range st.sales {
		if matchSale(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func (r *saleRepo) Create(ctx context.Context, s *sale.Sale) error {
	return r.db.write(func(st *state) error {
		st.sales[s.ID] = *s
		st.stamp(s.ID)
		return nil
	})
}

func (r *saleRepo) List(ctx context.Context, f sale.Filter) ([]*sale.Sale, error) {
	var out []*sale.Sale
	err := r.db.read(func(st *state) error {
		matched := st.matchingSales(f)
		sort.Slice(matched, func(i, j int) bool {
			return st.rank[matched[i].ID] > st.rank[matched[j].ID]
		})
		for _, s := range paginate(matched, f.Limit, 0) {
			s := s
			if p, ok := st.products[s.ProductID]; ok {
				s.ProductName = p.Name
			}
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) Summarize(ctx context.Context, f sale.Filter) (sale.Summary, error) {
	sum := sale.Summary{Total: decimal.Zero, Cash: decimal.Zero, MobileMoney: decimal.Zero, Card: decimal.Zero}
	err := r.db.read(func(st *state) error {
		for _, s := range st.matchingSales(f) {
			sum.Total = sum.Total.Add(s.SaleAmount)
			sum.Count++
			sum.Units += s.Quantity
			switch s.PaymentMethod {
			case sale.PaymentCash:
				sum.Cash = sum.Cash.Add(s.SaleAmount)
			case sale.PaymentMobileMoney:
				sum.MobileMoney = sum.MobileMoney.Add(s.SaleAmount)
			case sale.PaymentCard:
				sum.Card = sum.Card.Add(s.SaleAmount)
			}
		}
		return nil
	})
	return sum, err
}

func (r *saleRepo) DailyTotals(ctx context.Context, f sale.Filter) ([]sale.DailyPoint, error) {
	var out []sale.DailyPoint
	err := r.db.read(func(st *state) error {
		byDay := map[time.Time]*sale.DailyPoint{}
		for _, s := range st.matchingSales(f) {
			day := sale.TruncateDay(s.SaleDate)
			p, ok := byDay[day]
			if !ok {
				p = &sale.DailyPoint{Date: day, Total: decimal.Zero}
				byDay[day] = p
			}
			p.Total = p.Total.Add(s.SaleAmount)
			p.Count++
		}
		for _, p := range byDay {
			out = append(out, *p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
		return nil
	})
	return out, err
}

func (r *saleRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]sale.TopProduct, error) {
	var out []sale.TopProduct
	err := r.db.read(func(st *state) error {
		byProduct := map[string]*sale.TopProduct{}
		for _, s := range st.matchingSales(sale.Filter{From: from, To: to, OnlyCompleted: true}) {
			tp, ok := byProduct[s.ProductID]
			if !ok {
				tp = &sale.TopProduct{ProductID: s.ProductID, Revenue: decimal.Zero}
				if p, found := st.products[s.ProductID]; found {
					tp.Name = p.Name
				}
				byProduct[s.ProductID] = tp
			}
			tp.SaleCount++
			tp.Units += s.Quantity
			tp.Revenue = tp.Revenue.Add(s.SaleAmount)
		}
		for _, tp := range byProduct {
			out = append(out, *tp)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].SaleCount != out[j].SaleCount {
				return out[i].SaleCount > out[j].SaleCount
			}
			if !out[i].Revenue.Equal(out[j].Revenue) {
				return out[i].Revenue.GreaterThan(out[j].Revenue)
			}
			return out[i].Name < out[j].Name
		})
		out = paginate(out, limit, 0)
		return nil
	})
	return out, err
}

func (r *saleRepo) GrossProfit(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	profit := decimal.Zero
	err := r.db.read(func(st *state) error {
		for _, s := range st.matchingSales(sale.Filter{From: from, To: to, OnlyCompleted: true}) {
			profit = profit.Add(s.SaleAmount)
			if p, ok := st.products[s.ProductID]; ok {
				profit = profit.Sub(p.BuyingPrice.Mul(decimal.NewFromInt(int64(s.Quantity))))
			}
		}
		return nil
	})
	return profit, err
}

func (r *saleRepo) DeleteAll(ctx context.Context) (int, error) {
	count := 0
	err := r.db.write(func(st *state) error {
		count = len(st.sales)
		st.sales = map[string]sale.Sale{}
		return nil
	})
	return count, err
}

type reportRepo struct {
	db access
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *reportRepo) Upsert(ctx context.Context, rep *sale.Report) error {
	return r.db.write(func(st *state) error {
		for id, existing := range st.reports {
			if sameDay(existing.ReportDate, rep.ReportDate) {
				rep.ID = id
				rep.CreatedAt = existing.CreatedAt
				rep.UpdatedAt = time.Now()
				st.reports[id] = *rep
				return nil
			}
		}
		st.reports[rep.ID] = *rep
		st.stamp(rep.ID)
		return nil
	})
}

func (r *reportRepo) FindByID(ctx context.Context, id string) (*sale.Report, error) {
	var out *sale.Report
	err := r.db.read(func(st *state) error {
		rep, ok := st.reports[id]
		if !ok {
			return sale.ErrReportNotFound
		}
		out = &rep
		return nil
	})
	return out, err
}

func (r *reportRepo) FindByDate(ctx context.Context, day time.Time) (*sale.Report, error) {
	var out *sale.Report
	err := r.db.read(func(st *state) error {
		for _, rep := range st.reports {
			if sameDay(rep.ReportDate, day) {
				rep := rep
				out = &rep
				return nil
			}
		}
		return sale.ErrReportNotFound
	})
	return out, err
}

func (r *reportRepo) List(ctx context.Context, generatedBy string, from, to time.Time) ([]*sale.Report, error) {
	var out []*sale.Report
	err := r.db.read(func(st *state) error {
		for _, rep := range st.reports {
			if generatedBy != "" && rep.GeneratedBy != generatedBy {
				continue
			}
			if !inRange(rep.ReportDate, from, to) {
				continue
			}
			rep := rep
			out = append(out, &rep)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ReportDate.After(out[j].ReportDate) })
		return nil
	})
	return out, err
}

func (r *reportRepo) DeleteAll(ctx context.Context) (int, error) {
	count := 0
	err := r.db.write(func(st *state) error {
		count = len(st.reports)
		st.reports = map[string]sale.Report{}
		return nil
	})
	return count, err
}
