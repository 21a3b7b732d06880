package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	cart := server.Group("/cart", requireAuth)
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.CreateCartItem)
		cart.PATCH("/:id", h.UpdateCartItem)
		cart.DELETE("/:id", h.DeleteCartItem)
		cart.DELETE("", h.ClearCart)
	}
}
