package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// SellerController manages seller accounts
type SellerController struct {
	sellerService *service.SellerService
	logger        logger.Logger
}

// NewSellerController creates a SellerController
func NewSellerController(sellerService *service.SellerService, logger logger.Logger) *SellerController {
	return &SellerController{
		sellerService: sellerService,
		logger:        logger,
	}
}

// List returns the sellers
// @Summary List sellers
// @Tags sellers
// @Produce json
// @Param search query string false "Name, username or phone contains"
// @Param status query string false "all, active or inactive" default(all)
// @Success 200 {array} seller.Seller
// @Security BearerAuth
// @Router /admin/sellers [get]
func (c *SellerController) List(ctx *gin.Context) {
	sellers, err := c.sellerService.List(ctx.Request.Context(), seller.Filter{
		Search: ctx.Query("search"),
		Status: seller.StatusFilter(ctx.DefaultQuery("status", string(seller.StatusAll))),
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, sellers)
}

// Get returns one seller
// @Summary Seller details
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Success 200 {object} seller.Seller
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sellers/{id} [get]
func (c *SellerController) Get(ctx *gin.Context) {
	s, err := c.sellerService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// Create opens a seller account
// @Summary Create a seller
// @Tags sellers
// @Accept json
// @Produce json
// @Param seller body dto.SellerRequest true "Seller"
// @Success 201 {object} seller.Seller
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sellers [post]
func (c *SellerController) Create(ctx *gin.Context) {
	in, ok := bindSeller(ctx)
	if !ok {
		return
	}

	s, err := c.sellerService.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, s)
}

// Update edits a seller's profile
// @Summary Update a seller
// @Tags sellers
// @Accept json
// @Produce json
// @Param id path string true "Seller ID"
// @Param seller body dto.SellerRequest true "Seller"
// @Success 200 {object} seller.Seller
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sellers/{id} [put]
func (c *SellerController) Update(ctx *gin.Context) {
	in, ok := bindSeller(ctx)
	if !ok {
		return
	}

	s, err := c.sellerService.Update(ctx.Request.Context(), ctx.Param("id"), in)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

// Toggle activates or deactivates a seller and its login
// @Summary Toggle a seller
// @Tags sellers
// @Produce json
// @Param id path string true "Seller ID"
// @Success 200 {object} seller.Seller
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/sellers/{id}/toggle [patch]
func (c *SellerController) Toggle(ctx *gin.Context) {
	s, err := c.sellerService.ToggleActive(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, s)
}

func bindSeller(ctx *gin.Context) (service.SellerInput, bool) {
	var request dto.SellerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return service.SellerInput{}, false
	}

	hireDate, err := dto.ParseDate(request.HireDate)
	if err != nil {
		badRequest(ctx, err)
		return service.SellerInput{}, false
	}

	return service.SellerInput{
		Username:  request.Username,
		Password:  request.Password,
		Email:     request.Email,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Profile: seller.Profile{
			Phone:        request.Phone,
			Address:      request.Address,
			IDCardNumber: request.IDCardNumber,
			Salary:       request.Salary,
			HireDate:     hireDate,
		},
	}, true
}
