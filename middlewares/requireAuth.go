package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and stores its claims under "user".
// Browsers cannot set headers on websocket upgrades, so a "token" query
// parameter is accepted when the header is absent.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := ""
		header := ctx.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		} else if header == "" {
			tokenString = ctx.Query("token")
		}
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token required"})
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}
