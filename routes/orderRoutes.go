package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	transactions := server.Group("/transactions", requireAuth)
	{
		transactions.POST("/checkout", h.PlaceOrder)
		transactions.GET("/options", h.GetCheckoutOptions)
	}

	server.GET("/history", requireAuth, h.GetOrderHistory)
	server.GET("/orders/:id/detail", requireAuth, h.GetOrderDetail)
}
