package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/dto"
)

// gin context keys set by the middlewares
const (
	keyUserID     = "user_id"
	keyUsername   = "username"
	keyUserRole   = "user_role"
	keySellerID   = "seller_id"
	keyCustomerID = "customer_id"
)

type contextKey string

const principalKey contextKey = "principal"

// JWTAuthMiddleware rejects requests without a valid Bearer token and stores
// the token's claims in the context
func JWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Authentication required",
				err.Error(),
			))
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		setPrincipal(c, claims.Principal())
		c.Next()
	}
}

// OptionalJWTAuthMiddleware stores the claims of a valid token when one is
// sent and lets anonymous requests through
func OptionalJWTAuthMiddleware(jwtService *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, err := bearerToken(c); err == nil {
			if claims, err := jwtService.ValidateToken(tokenString); err == nil {
				setPrincipal(c, claims.Principal())
			}
		}
		c.Next()
	}
}

// RoleAuthMiddleware only lets through users holding one of roles
func RoleAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Authentication required",
				"",
			))
			return
		}

		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			http.StatusForbidden,
			"Access denied",
			"You do not have permission to access this resource",
		))
	}
}

// GetCurrentUser returns the authenticated principal of the request
func GetCurrentUser(c *gin.Context) (Principal, bool) {
	userID := c.GetString(keyUserID)
	if userID == "" {
		return Principal{}, false
	}
	return Principal{
		UserID:     userID,
		Username:   c.GetString(keyUsername),
		Role:       c.GetString(keyUserRole),
		SellerID:   c.GetString(keySellerID),
		CustomerID: c.GetString(keyCustomerID),
	}, true
}

// PrincipalFromContext returns the principal stored in a request context
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// SetPrincipal stores p on the gin context; used by the middlewares and by tests
func SetPrincipal(c *gin.Context, p Principal) {
	setPrincipal(c, p)
}

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(keyUserID, p.UserID)
	c.Set(keyUsername, p.Username)
	c.Set(keyUserRole, p.Role)
	c.Set(keySellerID, p.SellerID)
	c.Set(keyCustomerID, p.CustomerID)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalKey, p))
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("the Authorization header is missing")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("use the format 'Bearer <token>'")
	}
	return parts[1], nil
}
