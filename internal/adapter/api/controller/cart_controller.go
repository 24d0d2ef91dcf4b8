package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
	"github.com/VS237/momshop/pkg/session"
)

// CartController manages the visitor's cart. The cart is keyed by the
// session id, so it works before login.
type CartController struct {
	cartService *service.CartService
	logger      logger.Logger
}

// NewCartController creates a CartController
func NewCartController(cartService *service.CartService, logger logger.Logger) *CartController {
	return &CartController{
		cartService: cartService,
		logger:      logger,
	}
}

// Get returns the priced cart
// @Summary View cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} service.CartSummary
// @Failure 500 {object} dto.ErrorResponse
// @Router /cart [get]
func (c *CartController) Get(ctx *gin.Context) {
	c.respondSummary(ctx, http.StatusOK)
}

// AddItem puts units of a product in the cart
// @Summary Add to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param item body dto.CartItemRequest true "Product and quantity"
// @Success 201 {object} service.CartSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cart/items [post]
func (c *CartController) AddItem(ctx *gin.Context) {
	var request dto.CartItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	if _, err := c.cartService.Add(ctx.Request.Context(), session.GetSessionID(ctx), request.ProductID, request.Quantity); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.respondSummary(ctx, http.StatusCreated)
}

// UpdateItem sets the quantity of a cart line
// @Summary Change quantity
// @Description Sets a line's quantity; zero or less removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param product_id path string true "Product ID"
// @Param item body dto.CartQuantityRequest true "New quantity"
// @Success 200 {object} service.CartSummary
// @Failure 400 {object} dto.ErrorResponse
// @Router /cart/items/{product_id} [put]
func (c *CartController) UpdateItem(ctx *gin.Context) {
	var request dto.CartQuantityRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	if _, err := c.cartService.Update(ctx.Request.Context(), session.GetSessionID(ctx), ctx.Param("product_id"), request.Quantity); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.respondSummary(ctx, http.StatusOK)
}

// RemoveItem drops a cart line
// @Summary Remove from cart
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param product_id path string true "Product ID"
// @Success 200 {object} service.CartSummary
// @Router /cart/items/{product_id} [delete]
func (c *CartController) RemoveItem(ctx *gin.Context) {
	if _, err := c.cartService.Remove(ctx.Request.Context(), session.GetSessionID(ctx), ctx.Param("product_id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.respondSummary(ctx, http.StatusOK)
}

// Clear empties the cart
// @Summary Empty cart
// @Tags cart
// @Param X-Session-ID header string false "Session ID"
// @Success 204
// @Router /cart [delete]
func (c *CartController) Clear(ctx *gin.Context) {
	if err := c.cartService.Clear(ctx.Request.Context(), session.GetSessionID(ctx)); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Count returns the number of units in the cart
// @Summary Cart badge
// @Tags cart
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Success 200 {object} dto.CartCountResponse
// @Router /cart/count [get]
func (c *CartController) Count(ctx *gin.Context) {
	n, err := c.cartService.Count(ctx.Request.Context(), session.GetSessionID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CartCountResponse{Count: n})
}

func (c *CartController) respondSummary(ctx *gin.Context, status int) {
	summary, err := c.cartService.Snapshot(ctx.Request.Context(), session.GetSessionID(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(status, summary)
}
