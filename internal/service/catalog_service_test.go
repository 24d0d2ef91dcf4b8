package service

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/domain/catalog"
)

func (f *fixture) catalog() *CatalogService {
	return NewCatalogService(f.store, f.shop.PageSize, f.shop.City, f.log)
}

func TestCatalogService_Save(t *testing.T) {
	minStock := 4
	tests := []struct {
		name    string
		input   ProductInput
		wantErr error
	}{
		{
			name: "valid product with new category and supplier",
			input: ProductInput{
				Name: "Rice 5kg", Unit: "bag",
				BuyingPrice: decimal.NewFromInt(3000), SellingPrice: decimal.NewFromInt(3500),
				Quantity: 12, MinStockLevel: &minStock,
				CategoryName: "Groceries", SupplierName: "Sodecoton",
			},
		},
		{
			name: "selling price equal to cost",
			input: ProductInput{
				Name: "Rice 5kg", BuyingPrice: decimal.NewFromInt(3000), SellingPrice: decimal.NewFromInt(3000),
			},
			wantErr: catalog.ErrPriceBelowCost,
		},
		{
			name: "zero price",
			input: ProductInput{
				Name: "Rice 5kg", BuyingPrice: decimal.Zero, SellingPrice: decimal.NewFromInt(3000),
			},
			wantErr: catalog.ErrInvalidPrice,
		},
		{
			name: "blank name",
			input: ProductInput{
				Name: "  ", BuyingPrice: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(2),
			},
			wantErr: catalog.ErrEmptyName,
		},
		{
			name: "negative quantity",
			input: ProductInput{
				Name: "Rice", BuyingPrice: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(2), Quantity: -1,
			},
			wantErr: catalog.ErrInvalidQuantity,
		},
		{
			name: "unknown product id",
			input: ProductInput{
				ID: "missing", Name: "Rice", BuyingPrice: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(2),
			},
			wantErr: catalog.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := f.catalog()

			p, err := svc.Save(f.ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, svc.Categories(f.ctx), "rolled back category creation")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4, p.MinStockLevel)
			require.NotEmpty(t, p.CategoryID)
			require.NotEmpty(t, p.SupplierID)

			suppliers := svc.Suppliers(f.ctx)
			require.Len(t, suppliers, 1)
			assert.Equal(t, "Yaounde", suppliers[0].City)
		})
	}
}

func TestCatalogService_Save_ReusesCategoryAndUpdates(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog()

	in := ProductInput{
		Name: "Milk", BuyingPrice: decimal.NewFromInt(300), SellingPrice: decimal.NewFromInt(450),
		Quantity: 5, CategoryName: "Dairy",
	}
	first, err := svc.Save(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultMinStockLevel, first.MinStockLevel)

	in.Name = "Yoghurt"
	second, err := svc.Save(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.CategoryID, second.CategoryID)
	assert.Len(t, svc.Categories(f.ctx), 1)

	in.ID = first.ID
	in.Name = "Fresh milk"
	in.SellingPrice = decimal.NewFromInt(500)
	updated, err := svc.Save(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	got, err := svc.Product(f.ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh milk", got.Name)
	assert.True(t, got.SellingPrice.Equal(decimal.NewFromInt(500)))
}

func TestCatalogService_Browse(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 11; i++ {
		f.product(t, fmt.Sprintf("Item %02d", i), 100, 200, 5)
	}
	f.product(t, "Sold out", 100, 200, 0)
	svc := f.catalog()

	page1 := svc.Browse(f.ctx, "", "", 1)
	assert.Equal(t, 11, page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Len(t, page1.Products, 9)

	page2 := svc.Browse(f.ctx, "", "", 2)
	assert.Len(t, page2.Products, 2)

	none := svc.Browse(f.ctx, "sold out", "", 0)
	assert.Equal(t, 1, none.Page)
	assert.Empty(t, none.Products)

	assert.Len(t, svc.Featured(f.ctx), 8)

	all, total, low := svc.List(f.ctx, catalog.ProductFilter{})
	assert.Len(t, all, 12)
	assert.Equal(t, 12, total)
	assert.Equal(t, 1, low)
}

func TestCatalogService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := f.catalog()
	loose := f.product(t, "Loose", 100, 200, 5)
	sold := f.product(t, "Sold", 100, 200, 5)
	actor, _ := f.sellerActor(t, "paul", "699000001")
	_, err := NewSaleService(f.store, f.pub, f.log).Record(f.ctx, actor, SaleInput{Lines: []SaleLine{{ProductID: sold.ID, Quantity: 1}}, IsCompleted: true})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.ctx, loose.ID))
	_, err = svc.Product(f.ctx, loose.ID)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(f.ctx, sold.ID), catalog.ErrProductInUse)
	assert.ErrorIs(t, svc.Delete(f.ctx, "missing"), catalog.ErrProductNotFound)
}

func TestCatalogService_InventorySummary(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Tea", 100, 200, 7)

	summary, err := f.catalog().InventorySummary(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "- Tea: 200 XAF (Stock: 7 unit)", summary)
}
