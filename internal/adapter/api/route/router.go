package route

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/VS237/momshop/internal/adapter/api/controller"
	"github.com/VS237/momshop/internal/bootstrap"
	"github.com/VS237/momshop/pkg/auth"
	"github.com/VS237/momshop/pkg/logger"
	"github.com/VS237/momshop/pkg/session"
)

// BasePath prefixes every API route
const BasePath = "/api/v1"

// Dependencies is what NewRouter needs to build the HTTP API
type Dependencies struct {
	Services    *bootstrap.Services
	JWT         *auth.JWTService
	Health      controller.Pinger
	Version     string
	CORSOrigins []string
	Logger      logger.Logger
}

// NewRouter builds the gin engine with every controller registered
func NewRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(corsConfig(d.CORSOrigins)))
	router.Use(session.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	svc, log := d.Services, d.Logger
	orderController := controller.NewOrderController(svc.Checkout, svc.Orders, svc.Fulfillment, log)
	saleController := controller.NewSaleController(svc.Sales, log)
	reportController := controller.NewReportController(svc.Reports, log)
	dashboardController := controller.NewDashboardController(svc.Dashboard, log)

	api := router.Group(BasePath)
	api.GET("/health", controller.NewHealthController(d.Health, d.Version, log).Check)

	SetupAuthRoutes(api, d.JWT, controller.NewAuthController(svc.Auth, log))
	SetupShopRoutes(api, controller.NewShopController(svc.Catalog, log))
	SetupCartRoutes(api, controller.NewCartController(svc.Cart, log))
	SetupOrderRoutes(api, d.JWT, orderController)
	SetupStaffRoutes(api, d.JWT, StaffControllers{
		Sale:      saleController,
		Report:    reportController,
		Dashboard: dashboardController,
		Chat:      controller.NewChatController(svc.Assistant, log),
	})
	SetupAdminRoutes(api, d.JWT, AdminControllers{
		Product:   controller.NewProductController(svc.Catalog, log),
		Seller:    controller.NewSellerController(svc.Sellers, log),
		Expense:   controller.NewExpenseController(svc.Expenses, log),
		Report:    reportController,
		Sale:      saleController,
		Order:     orderController,
		Dashboard: dashboardController,
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", session.HeaderName},
		ExposeHeaders:    []string{session.HeaderName, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			// credentials cannot be combined with a wildcard origin
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
