package route

import (
	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/adapter/api/controller"
	"github.com/VS237/momshop/internal/domain/user"
	"github.com/VS237/momshop/pkg/auth"
)

// StaffControllers groups the handlers open to sellers and admins
type StaffControllers struct {
	Sale      *controller.SaleController
	Report    *controller.ReportController
	Dashboard *controller.DashboardController
	Chat      *controller.ChatController
}

// SetupStaffRoutes registers the counter, reporting and assistant routes
func SetupStaffRoutes(router *gin.RouterGroup, jwtService *auth.JWTService, c StaffControllers) {
	staff := router.Group("")
	staff.Use(auth.JWTAuthMiddleware(jwtService))
	staff.Use(auth.RoleAuthMiddleware(string(user.RoleAdmin), string(user.RoleSeller)))
	{
		staff.POST("/sales", c.Sale.Record)
		staff.GET("/sales/credits", c.Sale.Credits)

		staff.GET("/dashboard/seller", c.Dashboard.Seller)

		staff.POST("/reports/daily", c.Report.GenerateDaily)
		staff.GET("/reports", c.Report.List)
		staff.GET("/reports/:id", c.Report.Get)

		staff.POST("/chat", c.Chat.SendMessage)
		staff.GET("/chat/history", c.Chat.History)
		staff.DELETE("/chat/history", c.Chat.ClearHistory)
	}
}
