package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/adapter/export"
	"github.com/VS237/momshop/internal/domain/sale"
)

func (f *fixture) reports() *ReportService {
	return NewReportService(f.store, export.NewExcelReportWriter(), f.pub, f.log)
}

func TestReportService_GenerateDaily(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 50)
	actor, sel := f.sellerActor(t, "paul", "699000001")
	sales := NewSaleService(f.store, f.pub, f.log)

	_, err := sales.Record(f.ctx, actor, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 2}}, IsCompleted: true})
	require.NoError(t, err)
	_, err = sales.Record(f.ctx, actor, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}, PaymentMethod: sale.PaymentCard, IsCompleted: true})
	require.NoError(t, err)
	// credit sales stay out of the daily figures
	_, err = sales.Record(f.ctx, actor, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 5}}})
	require.NoError(t, err)

	svc := f.reports()
	r, err := svc.GenerateDaily(f.ctx, time.Now(), actor)
	require.NoError(t, err)
	assert.True(t, r.TotalSales.Equal(decimal.NewFromInt(600)), r.TotalSales.String())
	assert.Equal(t, 2, r.TotalCustomers)
	assert.Equal(t, 3, r.TotalProductsSold)
	assert.True(t, r.CashSales.Equal(decimal.NewFromInt(400)), r.CashSales.String())
	assert.True(t, r.MobileMoneySales.IsZero())
	assert.True(t, r.CardSales.Equal(decimal.NewFromInt(200)), r.CardSales.String())
	assert.True(t, r.TotalSales.Equal(r.CashSales.Add(r.MobileMoneySales).Add(r.CardSales)))
	assert.Equal(t, sel.ID, r.GeneratedBy)

	// regenerating replaces the day's report
	_, err = sales.Record(f.ctx, actor, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}, IsCompleted: true})
	require.NoError(t, err)
	again, err := svc.GenerateDaily(f.ctx, time.Now(), actor)
	require.NoError(t, err)
	assert.Equal(t, r.ID, again.ID)
	assert.True(t, again.TotalSales.Equal(decimal.NewFromInt(800)))

	list, err := svc.List(f.ctx, adminActor(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReportService_GenerateDaily_Errors(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(t *testing.T, f *fixture) Actor
		wantErr error
	}{
		{
			name: "no completed sales",
			actor: func(t *testing.T, f *fixture) Actor {
				a, _ := f.sellerActor(t, "paul", "699000001")
				return a
			},
			wantErr: ErrNoSales,
		},
		{
			name:    "admin without seller",
			actor:   func(t *testing.T, f *fixture) Actor { return adminActor() },
			wantErr: ErrNoSeller,
		},
		{
			name:    "anonymous",
			actor:   func(t *testing.T, f *fixture) Actor { return Actor{} },
			wantErr: ErrUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.reports()

			r, err := svc.GenerateDaily(f.ctx, time.Now(), tt.actor(t, f))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, r)

			list, err := svc.List(f.ctx, adminActor(), time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestReportService_SellerVisibility(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 50)
	paul, _ := f.sellerActor(t, "paul", "699000001")
	lena, _ := f.sellerActor(t, "lena", "699000002")

	_, err := NewSaleService(f.store, f.pub, f.log).Record(f.ctx, paul, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}, IsCompleted: true})
	require.NoError(t, err)

	svc := f.reports()
	r, err := svc.GenerateDaily(f.ctx, time.Now(), paul)
	require.NoError(t, err)

	_, err = svc.Get(f.ctx, r.ID, paul)
	assert.NoError(t, err)
	_, err = svc.Get(f.ctx, r.ID, lena)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(f.ctx, r.ID, adminActor())
	assert.NoError(t, err)

	own, err := svc.List(f.ctx, lena, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, own)

	_, err = svc.DeleteAll(f.ctx, paul)
	assert.ErrorIs(t, err, ErrForbidden)
	n, err := svc.DeleteAll(f.ctx, adminActor())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReportService_SellerPerformance(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 50)
	paul, sel := f.sellerActor(t, "paul", "699000001")
	sales := NewSaleService(f.store, f.pub, f.log)
	for _, qty := range []int{1, 3} {
		_, err := sales.Record(f.ctx, paul, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: qty}}, IsCompleted: true})
		require.NoError(t, err)
	}

	svc := f.reports()
	perf, err := svc.SellerPerformance(f.ctx, sel.ID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "paul", perf.SellerName)
	assert.Equal(t, 2, perf.Summary.Count)
	assert.True(t, perf.Summary.Total.Equal(decimal.NewFromInt(800)))
	assert.True(t, perf.Average.Equal(decimal.NewFromInt(400)))
	assert.Len(t, perf.Sales, 2)
	require.Len(t, perf.Daily, 1)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSellerPerformance(f.ctx, &buf, sel.ID, time.Time{}, time.Time{}))
	assert.NotZero(t, buf.Len())
	assert.Equal(t, export.NewExcelReportWriter().ContentType(), svc.ContentType())
}
