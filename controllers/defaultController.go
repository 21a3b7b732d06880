package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Kopi API. Enjoy seamless interaction with this API.

AUTH
- POST "/auth/register", "/auth/login", "/auth/verify-token"
- POST "/auth/forgot-password", "/auth/verify-otp"

CATALOG
- GET "/products", "/products/filter", "/products/favorite", "/products/options", "/products/:id"
- GET "/categories", "/categories/:id"
- GET "/promos", "/promos/:code"

CART AND ORDERS (bearer token)
- GET/POST/DELETE "/cart", PATCH/DELETE "/cart/:id"
- GET "/transactions/options", POST "/transactions/checkout"
- GET "/history", "/orders/:id/detail"
- GET/PATCH "/profile"

ADMIN (admin token)
- "/admin/products", "/admin/categories", "/admin/orders", "/admin/promos", "/admin/users"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Health reports whether the database answers a ping.
func (h *Handler) Health(ctx *gin.Context) {
	sqlDB, err := h.Store.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		respondWithError(ctx, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "ok", gin.H{"database": "up"})
}
