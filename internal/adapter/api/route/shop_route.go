package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
)

// SetupShopRoutes registers the public storefront
func SetupShopRoutes(router *gin.RouterGroup, shopController *controller.ShopController) {
	shop := router.Group("/shop")
	{
		shop.GET("/products", shopController.Products)
		shop.GET("/products/featured", shopController.Featured)
		shop.GET("/products/:id", shopController.Product)
		shop.GET("/categories", shopController.Categories)
	}
}
