package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// ReportController manages daily sales reports
type ReportController struct {
	reportService *service.ReportService
	logger        logger.Logger
}

// NewReportController creates a ReportController
func NewReportController(reportService *service.ReportService, logger logger.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// GenerateDaily rolls up a day's completed sales
// @Summary Generate a daily report
// @Description Regenerating a day replaces its earlier report. Credit sales are left out.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body dto.DailyReportRequest false "Day, defaults to today"
// @Success 201 {object} sale.Report
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/daily [post]
func (c *ReportController) GenerateDaily(ctx *gin.Context) {
	var request dto.DailyReportRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			badRequest(ctx, err)
			return
		}
	}

	day, err := dto.ParseDate(request.Date)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	if day.IsZero() {
		day = time.Now()
	}

	report, err := c.reportService.GenerateDaily(ctx.Request.Context(), day, actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, report)
}

// List returns the reports in a date range
// @Summary List reports
// @Description Sellers only see the reports they generated
// @Tags reports
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} sale.Report
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	from, to, err := dateRange(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	reports, err := c.reportService.List(ctx.Request.Context(), actorOf(ctx), from, to)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	if reports == nil {
		reports = []*sale.Report{}
	}
	ctx.JSON(http.StatusOK, reports)
}

// Get returns one report
// @Summary Report details
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} sale.Report
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id} [get]
func (c *ReportController) Get(ctx *gin.Context) {
	report, err := c.reportService.Get(ctx.Request.Context(), ctx.Param("id"), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// Export downloads the reports of a date range as a spreadsheet
// @Summary Export reports
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/reports/export.xlsx [get]
func (c *ReportController) Export(ctx *gin.Context) {
	from, to, err := dateRange(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := c.reportService.ExportReports(ctx.Request.Context(), &buf, from, to); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.attachment(ctx, "daily-reports.xlsx", buf.Bytes())
}

// DeleteAll removes every report
// @Summary Delete all reports
// @Tags reports
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/reports [delete]
func (c *ReportController) DeleteAll(ctx *gin.Context) {
	n, err := c.reportService.DeleteAll(ctx.Request.Context(), actorOf(ctx))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Reports deleted", gin.H{"deleted": n}))
}

// SellerPerformance summarizes one seller's sales
// @Summary Seller performance
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {object} sale.Performance
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sellers/{id}/report [get]
func (c *ReportController) SellerPerformance(ctx *gin.Context) {
	from, to, err := dateRange(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	perf, err := c.reportService.SellerPerformance(ctx.Request.Context(), ctx.Param("id"), from, to)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, perf)
}

// ExportSellerPerformance downloads a seller's performance as a spreadsheet
// @Summary Export seller performance
// @Tags sellers
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Seller ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/sellers/{id}/report.xlsx [get]
func (c *ReportController) ExportSellerPerformance(ctx *gin.Context) {
	from, to, err := dateRange(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := c.reportService.ExportSellerPerformance(ctx.Request.Context(), &buf, ctx.Param("id"), from, to); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	c.attachment(ctx, "seller-"+ctx.Param("id")+".xlsx", buf.Bytes())
}

func (c *ReportController) attachment(ctx *gin.Context, name string, body []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	ctx.Data(http.StatusOK, c.reportService.ContentType(), body)
}

// dateRange reads the from/to query days. The upper bound is exclusive, so
// to is moved to the start of the following day.
func dateRange(ctx *gin.Context) (time.Time, time.Time, error) {
	from, err := dto.ParseDate(ctx.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dto.ParseDate(ctx.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.IsZero() {
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}
