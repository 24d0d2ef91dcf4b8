package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// DashboardController serves the admin and seller dashboards
type DashboardController struct {
	dashboardService *service.DashboardService
	logger           logger.Logger
}

// NewDashboardController creates a DashboardController
func NewDashboardController(dashboardService *service.DashboardService, logger logger.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Admin returns the shop-wide KPIs
// @Summary Admin dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.AdminDashboard
// @Security BearerAuth
// @Router /dashboard/admin [get]
func (c *DashboardController) Admin(ctx *gin.Context) {
	d, err := c.dashboardService.Admin(ctx.Request.Context(), time.Now())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, d)
}

// Seller returns the caller's own figures. Admins pick a seller with the
// seller_id query parameter.
// @Summary Seller dashboard
// @Tags dashboard
// @Produce json
// @Param seller_id query string false "Seller ID (admin only)"
// @Success 200 {object} service.SellerDashboard
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/seller [get]
func (c *DashboardController) Seller(ctx *gin.Context) {
	actor := actorOf(ctx)
	sellerID := actor.SellerID
	if actor.IsAdmin() {
		sellerID = ctx.Query("seller_id")
	}

	d, err := c.dashboardService.Seller(ctx.Request.Context(), sellerID, time.Now())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, d)
}
