package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// ProductController is the back-office product management
type ProductController struct {
	catalogService *service.CatalogService
	logger         logger.Logger
}

// NewProductController creates a ProductController
func NewProductController(catalogService *service.CatalogService, logger logger.Logger) *ProductController {
	return &ProductController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// List returns the products, sold-out ones included
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Name or description contains"
// @Param category query string false "Category ID"
// @Param supplier query string false "Supplier ID"
// @Param low_stock query bool false "Only products at or below their minimum stock"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(50)
// @Success 200 {object} dto.ProductListResponse
// @Security BearerAuth
// @Router /admin/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	p := dto.GetPagination(queryInt(ctx, "page", 1), queryInt(ctx, "page_size", 50))
	products, total, lowStock := c.catalogService.List(ctx.Request.Context(), catalog.ProductFilter{
		Search:       ctx.Query("search"),
		CategoryID:   ctx.Query("category"),
		SupplierID:   ctx.Query("supplier"),
		LowStockOnly: ctx.Query("low_stock") == "true",
		Limit:        p.PageSize,
		Offset:       p.Offset(),
	})

	response := dto.NewProductListResponse(products, total, p.Page, p.PageSize)
	response.LowStockCount = lowStock
	ctx.JSON(http.StatusOK, response)
}

// Create adds a product
// @Summary Create a product
// @Description Category and supplier are given by name and created when missing. The selling price must exceed the buying price.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Product"
// @Success 201 {object} catalog.Product
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	c.save(ctx, "", http.StatusCreated)
}

// Update edits a product
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body dto.ProductRequest true "Product"
// @Success 200 {object} catalog.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	c.save(ctx, ctx.Param("id"), http.StatusOK)
}

// Delete removes a product
// @Summary Delete a product
// @Description Products referenced by orders or sales cannot be deleted
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.catalogService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Suppliers lists the suppliers
// @Summary List suppliers
// @Tags products
// @Produce json
// @Success 200 {array} catalog.Supplier
// @Security BearerAuth
// @Router /admin/suppliers [get]
func (c *ProductController) Suppliers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalogService.Suppliers(ctx.Request.Context()))
}

func (c *ProductController) save(ctx *gin.Context, id string, status int) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	p, err := c.catalogService.Save(ctx.Request.Context(), service.ProductInput{
		ID:            id,
		Name:          request.Name,
		Description:   request.Description,
		BuyingPrice:   request.BuyingPrice,
		SellingPrice:  request.SellingPrice,
		Unit:          request.Unit,
		Quantity:      request.Quantity,
		MinStockLevel: request.MinStockLevel,
		ImageURL:      request.ImageURL,
		CategoryName:  request.Category,
		SupplierName:  request.Supplier,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(status, p)
}
