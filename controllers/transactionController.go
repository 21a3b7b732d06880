package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgOrderPlaced    = "Order created successfully"
	msgCheckoutFailed = "Failed to process checkout"
)

// PlaceOrder converts the caller's cart into an order. The body is optional;
// form and query values are accepted as well as JSON.
func (h *Handler) PlaceOrder(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}

	var input services.CheckoutInput
	if err := ctx.ShouldBind(&input); err != nil && !errors.Is(err, io.EOF) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result, err := h.Checkout.Checkout(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		respondWithServiceError(ctx, err, msgCheckoutFailed)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, msgOrderPlaced, result)
}
