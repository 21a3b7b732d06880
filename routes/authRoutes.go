package routes

import (
	"github.com/Kariqs/kopi-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, h *controllers.Handler, requireAuth gin.HandlerFunc) {
	auth := server.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/verify-token", requireAuth, h.VerifyToken)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/verify-otp", h.VerifyOTP)
	}

	profile := server.Group("/profile", requireAuth)
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
	}
}
