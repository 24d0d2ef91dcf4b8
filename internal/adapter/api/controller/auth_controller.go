package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/logger"
)

// AuthController handles sign-up, login and token renewal
type AuthController struct {
	authService *service.AuthService
	logger      logger.Logger
}

// NewAuthController creates an AuthController
func NewAuthController(authService *service.AuthService, logger logger.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a customer account
// @Summary Register a customer
// @Description Creates a customer account with its profile and signs it in
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Sign-up form"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	res, err := c.authService.RegisterCustomer(ctx.Request.Context(), service.RegisterInput{
		Username:  request.Username,
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
		Address:   request.Address,
		City:      request.City,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, toLoginResponse(res))
}

// Login authenticates a user
// @Summary Log in
// @Description Checks the credentials and returns a JWT. The identifier is a username or an email address.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	res, err := c.authService.Login(ctx.Request.Context(), request.Identifier, request.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, toLoginResponse(res))
}

// RefreshToken renews a JWT
// @Summary Renew a token
// @Description Exchanges a valid or recently expired token for a new one
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token to renew"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	token, expiresAt, err := c.authService.Refresh(request.RefreshToken)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{AccessToken: token, ExpiresAt: expiresAt})
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	u, err := c.authService.Account(ctx.Request.Context(), actorOf(ctx).UserID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

func toLoginResponse(res *service.AuthResult) dto.LoginResponse {
	return dto.LoginResponse{
		User:        dto.ToUserResponse(res.User),
		CustomerID:  res.CustomerID,
		SellerID:    res.SellerID,
		AccessToken: res.Token,
		ExpiresAt:   res.ExpiresAt,
	}
}
