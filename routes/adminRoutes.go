package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/Kariqs/kopi-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	admin := server.Group("/admin", requireAuth, middlewares.RequireAdmin())

	products := admin.Group("/products")
	{
		products.GET("/export", h.ExportProducts)
		products.POST("", h.CreateProduct)
		products.PATCH("/:id", h.UpdateProduct)
		products.PATCH("/:id/stock", h.UpdateProductStock)
		products.DELETE("/:id", h.DeleteProduct)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.PATCH("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", h.GetOrders)
		orders.GET("/export", h.ExportOrders)
		orders.GET("/feed", h.OrderFeedSocket)
		orders.GET("/:id", h.GetOrder)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
	}

	promos := admin.Group("/promos")
	{
		promos.GET("", h.GetAllPromos)
		promos.POST("", h.CreatePromo)
		promos.PATCH("/:id", h.UpdatePromo)
		promos.DELETE("/:id", h.DeletePromo)
	}

	users := admin.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
		users.POST("", h.CreateUser)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// Register wires every route group onto server.
func Register(server *gin.Engine, h *controllers.Handler, jwtSecret string, metrics gin.HandlerFunc) {
	requireAuth := middlewares.RequireAuth(jwtSecret)

	DefaultRoutes(server, h, metrics)
	AuthRoutes(server, h, requireAuth)
	ProductRoutes(server, h)
	CartRoutes(server, h, requireAuth)
	OrderRoutes(server, h, requireAuth)
	AdminRoutes(server, h, requireAuth)
}
