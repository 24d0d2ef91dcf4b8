package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
	"github.com/VS237/momshop/pkg/session"
)

// OrderController covers checkout, receipts and order fulfillment
type OrderController struct {
	checkoutService    *service.CheckoutService
	orderService       *service.OrderService
	fulfillmentService *service.FulfillmentService
	logger             logger.Logger
}

// NewOrderController creates an OrderController
func NewOrderController(
	checkoutService *service.CheckoutService,
	orderService *service.OrderService,
	fulfillmentService *service.FulfillmentService,
	logger logger.Logger,
) *OrderController {
	return &OrderController{
		checkoutService:    checkoutService,
		orderService:       orderService,
		fulfillmentService: fulfillmentService,
		logger:             logger,
	}
}

// Checkout turns the session cart into a pending order
// @Summary Place an order
// @Description Creates a pending order from the cart at current selling prices and empties the cart
// @Tags orders
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Session ID"
// @Param shipping body dto.CheckoutRequest false "Delivery destination"
// @Success 201 {object} order.Order
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (c *OrderController) Checkout(ctx *gin.Context) {
	var request dto.CheckoutRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	actor := actorOf(ctx)
	if actor.UserID != "" && actor.CustomerID == "" {
		respondError(ctx, c.logger, service.ErrForbidden)
		return
	}

	o, err := c.checkoutService.PlaceOrder(ctx.Request.Context(), session.GetSessionID(ctx), actor.CustomerID, request.Shipping())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, o)
}

// Mine lists the caller's orders
// @Summary My orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(10)
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /orders/mine [get]
func (c *OrderController) Mine(ctx *gin.Context) {
	p := dto.GetPagination(queryInt(ctx, "page", 1), queryInt(ctx, "page_size", 10))
	orders, err := c.orderService.ListForCustomer(ctx.Request.Context(), actorOf(ctx).CustomerID, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewOrderListResponse(orders, len(orders)))
}

// Receipt returns an order by number
// @Summary Order receipt
// @Description Customers only see their own orders; staff see every order
// @Tags orders
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} order.Order
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts/{number} [get]
func (c *OrderController) Receipt(ctx *gin.Context) {
	o, err := c.orderService.Receipt(ctx.Request.Context(), ctx.Param("number"), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, o)
}

// Pending lists the orders waiting for fulfillment
// @Summary Pending orders
// @Tags orders
// @Produce json
// @Success 200 {object} dto.OrderListResponse
// @Security BearerAuth
// @Router /orders/pending [get]
func (c *OrderController) Pending(ctx *gin.Context) {
	orders, err := c.orderService.ListPending(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewOrderListResponse(orders, len(orders)))
}

// Latest polls the newest pending orders for the staff notification badge
// @Summary Latest pending orders
// @Tags orders
// @Produce json
// @Success 200 {object} dto.OrderListResponse
// @Security BearerAuth
// @Router /orders/latest [get]
func (c *OrderController) Latest(ctx *gin.Context) {
	orders, count, err := c.orderService.Latest(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewOrderListResponse(orders, count))
}

// Process fulfills a pending order from stock
// @Summary Process an order
// @Description Ships each line up to the available stock and records one sale per fulfilled line. Processing twice is reported, not repeated.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.ProcessOrderResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/process [post]
func (c *OrderController) Process(ctx *gin.Context) {
	res, err := c.fulfillmentService.Process(ctx.Request.Context(), ctx.Param("id"), actorOf(ctx))
	if errors.Is(err, service.ErrAlreadyProcessed) {
		ctx.JSON(http.StatusOK, dto.ProcessOrderResponse{
			Message:          "Order " + res.Order.Number + " was already processed",
			AlreadyProcessed: true,
			Result:           res,
		})
		return
	}
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProcessOrderResponse{
		Message: "Order " + res.Order.Number + " processed",
		Result:  res,
	})
}

// ClearAll deletes every order
// @Summary Delete all orders
// @Tags orders
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/orders [delete]
func (c *OrderController) ClearAll(ctx *gin.Context) {
	n, err := c.orderService.ClearAll(ctx.Request.Context(), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Orders deleted", gin.H{"deleted": n}))
}
