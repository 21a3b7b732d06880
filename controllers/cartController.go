package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgCartFetched       = "Cart retrieved successfully"
	msgCartItemAdded     = "Item added to cart"
	msgCartItemMerged    = "Cart item quantity updated"
	msgCartItemUpdated   = "Cart item updated"
	msgCartItemRemoved   = "Item removed from cart"
	msgCartCleared       = "Cart cleared"
	msgUnableToFetchCart = "Unable to fetch cart"
	msgUnableToSaveCart  = "Unable to update cart"
)

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *Handler) GetCart(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	view, err := h.Carts.View(claims.UserID, ctx.Query("promo"))
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToFetchCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgCartFetched, view)
}

func (h *Handler) CreateCartItem(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	var input services.AddToCartInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	line, created, err := h.Carts.Add(ctx.Request.Context(), claims.UserID, input)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveCart)
		return
	}
	if created {
		sendJSONResponse(ctx, http.StatusCreated, msgCartItemAdded, line)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgCartItemMerged, line)
}

func (h *Handler) UpdateCartItem(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input quantityRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, services.ErrInvalidQuantity.Error())
		return
	}

	line, err := h.Carts.UpdateQuantity(ctx.Request.Context(), claims.UserID, id, input.Quantity)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgCartItemUpdated, line)
}

func (h *Handler) DeleteCartItem(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Carts.Remove(claims.UserID, id); err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgCartItemRemoved, nil)
}

func (h *Handler) ClearCart(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	if err := h.Carts.Clear(claims.UserID); err != nil {
		respondWithServiceError(ctx, err, msgUnableToSaveCart)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgCartCleared, nil)
}
