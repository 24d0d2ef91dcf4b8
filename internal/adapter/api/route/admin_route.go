package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/pkg/auth"
)

// AdminControllers groups the back-office handlers
type AdminControllers struct {
	Product   *controller.ProductController
	Seller    *controller.SellerController
	Expense   *controller.ExpenseController
	Report    *controller.ReportController
	Sale      *controller.SaleController
	Order     *controller.OrderController
	Dashboard *controller.DashboardController
}

// SetupAdminRoutes registers the admin-only routes
func SetupAdminRoutes(router *gin.RouterGroup, jwtService *auth.JWTService, c AdminControllers) {
	adminOnly := auth.RoleAuthMiddleware(string(user.RoleAdmin))

	router.GET("/dashboard/admin", auth.JWTAuthMiddleware(jwtService), adminOnly, c.Dashboard.Admin)

	admin := router.Group("/admin")
	admin.Use(auth.JWTAuthMiddleware(jwtService))
	admin.Use(adminOnly)
	{
		admin.GET("/products", c.Product.List)
		admin.POST("/products", c.Product.Create)
		admin.PUT("/products/:id", c.Product.Update)
		admin.DELETE("/products/:id", c.Product.Delete)
		admin.GET("/suppliers", c.Product.Suppliers)

		admin.GET("/sellers", c.Seller.List)
		admin.POST("/sellers", c.Seller.Create)
		admin.GET("/sellers/:id", c.Seller.Get)
		admin.PUT("/sellers/:id", c.Seller.Update)
		admin.PATCH("/sellers/:id/toggle", c.Seller.Toggle)
		admin.GET("/sellers/:id/report", c.Report.SellerPerformance)
		admin.GET("/sellers/:id/report.xlsx", c.Report.ExportSellerPerformance)

		admin.GET("/expenses", c.Expense.List)
		admin.POST("/expenses", c.Expense.Create)
		admin.DELETE("/expenses/:id", c.Expense.Delete)

		admin.DELETE("/sales", c.Sale.DeleteAll)
		admin.DELETE("/reports", c.Report.DeleteAll)
		admin.DELETE("/orders", c.Order.ClearAll)
		admin.GET("/reports/export.xlsx", c.Report.Export)
	}
}
