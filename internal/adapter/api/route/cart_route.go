package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
)

// SetupCartRoutes registers the session cart. No login is needed.
func SetupCartRoutes(router *gin.RouterGroup, cartController *controller.CartController) {
	cart := router.Group("/cart")
	{
		cart.GET("", cartController.Get)
		cart.DELETE("", cartController.Clear)
		cart.GET("/count", cartController.Count)
		cart.POST("/items", cartController.AddItem)
		cart.PUT("/items/:product_id", cartController.UpdateItem)
		cart.DELETE("/items/:product_id", cartController.RemoveItem)
	}
}
