package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/pkg/auth"
)

// SetupOrderRoutes registers checkout, receipts and the fulfillment queue
func SetupOrderRoutes(router *gin.RouterGroup, jwtService *auth.JWTService, orderController *controller.OrderController) {
	orders := router.Group("/orders")
	orders.Use(auth.JWTAuthMiddleware(jwtService))
	{
		customer := auth.RoleAuthMiddleware(string(user.RoleCustomer))
		orders.POST("", customer, orderController.Checkout)
		orders.GET("/mine", customer, orderController.Mine)

		staff := auth.RoleAuthMiddleware(string(user.RoleAdmin), string(user.RoleSeller))
		orders.GET("/pending", staff, orderController.Pending)
		orders.GET("/latest", staff, orderController.Latest)
		orders.POST("/:id/process", staff, orderController.Process)
	}

	router.GET("/receipts/:number", auth.JWTAuthMiddleware(jwtService), orderController.Receipt)
}
