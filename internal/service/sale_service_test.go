package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/domain/sale"
)

func TestSaleService_Record(t *testing.T) {
	tests := []struct {
		name       string
		stock      int
		input      func(productID string) SaleInput
		wantErr    error
		wantSales  int
		wantStock  int
		wantAmount int64
	}{
		{
			name:  "completed cash sale takes stock",
			stock: 10,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 3}}, IsCompleted: true}
			},
			wantSales:  1,
			wantStock:  7,
			wantAmount: 1500,
		},
		{
			name:  "completed sale beyond stock is rejected",
			stock: 2,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 5}}, PaymentMethod: sale.PaymentMobileMoney, IsCompleted: true}
			},
			wantErr:   ErrOutOfStock,
			wantStock: 2,
		},
		{
			name:  "completed sale of the whole shelf",
			stock: 2,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 2}}, PaymentMethod: sale.PaymentMobileMoney, IsCompleted: true}
			},
			wantSales:  1,
			wantStock:  0,
			wantAmount: 1000,
		},
		{
			name:  "credit sale leaves stock alone",
			stock: 1,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 4}}}
			},
			wantSales:  1,
			wantStock:  1,
			wantAmount: 2000,
		},
		{
			name:  "out of stock rolls back every line",
			stock: 0,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 1}}, IsCompleted: true}
			},
			wantErr: ErrOutOfStock,
		},
		{
			name:      "no lines",
			stock:     5,
			input:     func(string) SaleInput { return SaleInput{} },
			wantErr:   ErrNoSaleLines,
			wantStock: 5,
		},
		{
			name:  "zero quantity",
			stock: 5,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 0}}}
			},
			wantErr:   catalog.ErrInvalidQuantity,
			wantStock: 5,
		},
		{
			name:  "unknown payment method",
			stock: 5,
			input: func(id string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: id, Quantity: 1}}, PaymentMethod: "barter"}
			},
			wantErr:   sale.ErrInvalidPaymentMethod,
			wantStock: 5,
		},
		{
			name:  "unknown product",
			stock: 5,
			input: func(string) SaleInput {
				return SaleInput{Lines: []SaleLine{{ProductID: "missing", Quantity: 1}}, IsCompleted: true}
			},
			wantErr:   catalog.ErrProductNotFound,
			wantStock: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.product(t, "Sardines", 300, 500, tt.stock)
			actor, sel := f.sellerActor(t, "paul", "699000001")

			sales, err := NewSaleService(f.store, f.pub, f.log).Record(f.ctx, actor, tt.input(p.ID))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				stored, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
				require.NoError(t, err)
				assert.Empty(t, stored)
			} else {
				require.NoError(t, err)
				require.Len(t, sales, tt.wantSales)
				assert.Equal(t, sel.ID, sales[0].SellerID)
				assert.True(t, sales[0].SaleAmount.Equal(decimal.NewFromInt(tt.wantAmount)), sales[0].SaleAmount.String())
			}
			assert.Equal(t, tt.wantStock, f.stock(t, p.ID))
		})
	}
}

func TestSaleService_Record_MultipleLinesAllOrNothing(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Tea", 100, 200, 5)
	b := f.product(t, "Coffee", 400, 600, 0)
	actor, _ := f.sellerActor(t, "paul", "699000001")

	_, err := NewSaleService(f.store, f.pub, f.log).Record(f.ctx, actor, SaleInput{
		Lines:       []SaleLine{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 1}},
		IsCompleted: true,
	})
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 5, f.stock(t, a.ID))
}

func TestSaleService_Record_ShortLineReturnsTakenStock(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Tea", 100, 200, 5)
	b := f.product(t, "Coffee", 400, 600, 1)
	actor, _ := f.sellerActor(t, "paul", "699000001")

	_, err := NewSaleService(f.store, f.pub, f.log).Record(f.ctx, actor, SaleInput{
		Lines:       []SaleLine{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 2}},
		IsCompleted: true,
	})
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 5, f.stock(t, a.ID))
	assert.Equal(t, 1, f.stock(t, b.ID))

	stored, err := f.store.Repos().Sales.List(f.ctx, sale.Filter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSaleService_ListCredits(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 5)
	paul, _ := f.sellerActor(t, "paul", "699000001")
	lena, _ := f.sellerActor(t, "lena", "699000002")
	svc := NewSaleService(f.store, f.pub, f.log)

	for _, a := range []Actor{paul, lena} {
		_, err := svc.Record(f.ctx, a, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}})
		require.NoError(t, err)
	}
	_, err := svc.Record(f.ctx, paul, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}, IsCompleted: true})
	require.NoError(t, err)

	own, err := svc.ListCredits(f.ctx, paul)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListCredits(f.ctx, adminActor())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSaleService_DeleteAll(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Tea", 100, 200, 5)
	seller, _ := f.sellerActor(t, "paul", "699000001")
	svc := NewSaleService(f.store, f.pub, f.log)
	_, err := svc.Record(f.ctx, seller, SaleInput{Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}}, IsCompleted: true})
	require.NoError(t, err)

	_, err = svc.DeleteAll(f.ctx, seller)
	assert.ErrorIs(t, err, ErrForbidden)

	n, err := svc.DeleteAll(f.ctx, adminActor())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
