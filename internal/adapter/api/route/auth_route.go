package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
	"github.com/VS237/momshop/pkg/auth"
)

// SetupAuthRoutes registers sign-up, login and token routes
func SetupAuthRoutes(router *gin.RouterGroup, jwtService *auth.JWTService, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)

		// the old token is the credential, so no middleware
		authRouter.POST("/refresh", authController.RefreshToken)

		authRouter.GET("/me", auth.JWTAuthMiddleware(jwtService), authController.Me)
	}
}
