package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// ShopController serves the public storefront
type ShopController struct {
	catalogService *service.CatalogService
	logger         logger.Logger
}

// NewShopController creates a ShopController
func NewShopController(catalogService *service.CatalogService, logger logger.Logger) *ShopController {
	return &ShopController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Products lists in-stock products
// @Summary Browse products
// @Description Lists in-stock products, newest first, with search and category filter
// @Tags shop
// @Produce json
// @Param search query string false "Name or description contains"
// @Param category query string false "Category ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.ProductListResponse
// @Router /shop/products [get]
func (c *ShopController) Products(ctx *gin.Context) {
	page := c.catalogService.Browse(ctx.Request.Context(), ctx.Query("search"), ctx.Query("category"), queryInt(ctx, "page", 1))
	ctx.JSON(http.StatusOK, dto.NewProductListResponse(page.Products, page.Total, page.Page, page.PageSize))
}

// Featured lists the newest in-stock products
// @Summary Featured products
// @Tags shop
// @Produce json
// @Success 200 {array} catalog.Product
// @Router /shop/products/featured [get]
func (c *ShopController) Featured(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalogService.Featured(ctx.Request.Context()))
}

// Product returns one product
// @Summary Product details
// @Tags shop
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} catalog.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /shop/products/{id} [get]
func (c *ShopController) Product(ctx *gin.Context) {
	p, err := c.catalogService.Product(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// Categories lists the product categories
// @Summary Categories
// @Tags shop
// @Produce json
// @Success 200 {array} catalog.Category
// @Router /shop/categories [get]
func (c *ShopController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.catalogService.Categories(ctx.Request.Context()))
}
