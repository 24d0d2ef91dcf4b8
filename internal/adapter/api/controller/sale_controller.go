package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// SaleController records counter sales
type SaleController struct {
	saleService *service.SaleService
	logger      logger.Logger
}

// NewSaleController creates a SaleController
func NewSaleController(saleService *service.SaleService, logger logger.Logger) *SaleController {
	return &SaleController{
		saleService: saleService,
		logger:      logger,
	}
}

// Record rings up a counter sale
// @Summary Record a sale
// @Description Records one sale per line and decrements stock. Every line succeeds or none does.
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.SaleRequest true "Sale lines"
// @Success 201 {array} sale.Sale
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales [post]
func (c *SaleController) Record(ctx *gin.Context) {
	var request dto.SaleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	method := sale.PaymentMethod(request.PaymentMethod)
	if method == "" {
		method = sale.PaymentCash
	}
	in := service.SaleInput{
		Lines:         make([]service.SaleLine, 0, len(request.Lines)),
		PaymentMethod: method,
		IsCompleted:   request.Completed(),
	}
	for _, l := range request.Lines {
		in.Lines = append(in.Lines, service.SaleLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	sales, err := c.saleService.Record(ctx.Request.Context(), actorOf(ctx), in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, sales)
}

// Credits lists unpaid sales
// @Summary Credit sales
// @Tags sales
// @Produce json
// @Success 200 {array} sale.Sale
// @Security BearerAuth
// @Router /sales/credits [get]
func (c *SaleController) Credits(ctx *gin.Context) {
	sales, err := c.saleService.ListCredits(ctx.Request.Context(), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if sales == nil {
		sales = []*sale.Sale{}
	}
	ctx.JSON(http.StatusOK, sales)
}

// DeleteAll wipes the sales history
// @Summary Delete all sales
// @Tags sales
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sales [delete]
func (c *SaleController) DeleteAll(ctx *gin.Context) {
	n, err := c.saleService.DeleteAll(ctx.Request.Context(), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Sales deleted", gin.H{"deleted": n}))
}
