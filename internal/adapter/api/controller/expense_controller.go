package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/expense"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// ExpenseController records operating expenses
type ExpenseController struct {
	expenseService *service.ExpenseService
	logger         logger.Logger
}

// NewExpenseController creates an ExpenseController
func NewExpenseController(expenseService *service.ExpenseService, logger logger.Logger) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
		logger:         logger,
	}
}

// List returns the expenses with their total
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param type query string false "Expense type"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} service.ExpenseList
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/expenses [get]
func (c *ExpenseController) List(ctx *gin.Context) {
	from, to, err := dateRange(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	list, err := c.expenseService.List(ctx.Request.Context(), expense.Filter{
		Type: expense.Type(ctx.Query("type")),
		From: from,
		To:   to,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// Create records an expense
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.ExpenseRequest true "Expense"
// @Success 201 {object} expense.Expense
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/expenses [post]
func (c *ExpenseController) Create(ctx *gin.Context) {
	var request dto.ExpenseRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	date, err := dto.ParseDate(request.Date)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	e, err := c.expenseService.Create(ctx.Request.Context(), expense.Type(request.Type), request.Description, request.Amount, date)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, e)
}

// Delete removes an expense
// @Summary Delete an expense
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/expenses/{id} [delete]
func (c *ExpenseController) Delete(ctx *gin.Context) {
	if err := c.expenseService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
