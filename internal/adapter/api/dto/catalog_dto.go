package dto

import (
	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/catalog"
)

// ProductRequest is the back-office product form. Category and supplier are
// given by name and created on the fly.
type ProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity" binding:"gte=0"`
	MinStockLevel *int            `json:"min_stock_level" binding:"omitempty,gte=0"`
	ImageURL      string          `json:"image_url"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
}

// ProductListResponse is one page of products
type ProductListResponse struct {
	Data          []*catalog.Product `json:"data"`
	TotalCount    int                `json:"total_count"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
	TotalPages    int                `json:"total_pages"`
	LowStockCount int                `json:"low_stock_count,omitempty"`
}

// NewProductListResponse builds a page, never with a nil slice
func NewProductListResponse(products []*catalog.Product, totalCount, page, pageSize int) ProductListResponse {
	if products == nil {
		products = []*catalog.Product{}
	}
	return ProductListResponse{
		Data:       products,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
