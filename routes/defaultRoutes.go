package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, h *controllers.Handler, metrics gin.HandlerFunc) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", h.Health)
	if metrics != nil {
		server.GET("/metrics", metrics)
	}
}
