package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/gin-gonic/gin"
)

// ProductRoutes registers the public catalog and promo endpoints.
func ProductRoutes(server *gin.Engine, h *controllers.Handler) {
	products := server.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/filter", h.FilterProducts)
		products.GET("/favorite", h.GetFavoriteProducts)
		products.GET("/options", h.GetProductOptions)
		products.GET("/:id", h.GetProduct)
	}

	server.GET("/categories", h.GetCategories)
	server.GET("/categories/:id", h.GetCategory)

	server.GET("/promos", h.GetPromos)
	server.GET("/promos/:code", h.GetPromoByCode)
}
