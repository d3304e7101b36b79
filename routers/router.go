package routers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/controllers"
	"github.com/fusionorder/fusion-order-api/middleware"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/services"
)

// Setup builds the router: CORS, the authentication gate over the whole API
// group, and role guards on the protected routes.
func Setup(cfg *config.Config, tokens *services.TokenService) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	controllers.SetTokenService(tokens)

	api := router.Group("/api")
	api.Use(middleware.Authenticate(tokens))

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	products := api.Group("/products")
	{
		products.GET("", controllers.ListProducts)
		products.GET("/:id", controllers.GetProduct)

		staff := products.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleManager))
		{
			staff.POST("", controllers.CreateProduct)
			staff.PUT("/:id", controllers.UpdateProduct)
			staff.DELETE("/:id", controllers.DeleteProduct)
			staff.POST("/:id/image", controllers.UploadProductImage)
		}
	}

	orders := api.Group("/orders")
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("", controllers.ListOrders)
		orders.GET("/:id", controllers.GetOrder)

		admin := orders.Group("", middleware.RequireRole(models.RoleAdmin))
		{
			admin.PUT("/:id/status", controllers.UpdateOrderStatus)
			admin.DELETE("/:id", controllers.DeleteOrder)
		}
	}

	adminUsers := api.Group("/admin/users", middleware.RequireRole(models.RoleAdmin))
	{
		adminUsers.GET("", controllers.ListUsers)
		adminUsers.GET("/:id", controllers.GetUser)
		adminUsers.PUT("/:id", controllers.UpdateUser)
		adminUsers.DELETE("/:id", controllers.DeleteUser)
	}

	api.GET("/uploads/:filename", controllers.GetUploadedImage)

	return router
}
