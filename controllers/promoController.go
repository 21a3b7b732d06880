package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPromos(ctx *gin.Context) {
	promos, err := h.Promos.Active()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch promos", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Promos retrieved successfully", promos)
}

func (h *Handler) GetPromoByCode(ctx *gin.Context) {
	promo, err := h.Promos.ByCode(ctx.Param("code"))
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch promo")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Promo retrieved successfully", promo)
}

func (h *Handler) GetAllPromos(ctx *gin.Context) {
	promos, err := h.Store.Promos.ListAll()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch promos", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Promos retrieved successfully", promos)
}

func (h *Handler) CreatePromo(ctx *gin.Context) {
	var input services.PromoInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	promo, err := h.Promos.Create(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to create promo")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, "Promo created successfully", promo)
}

func (h *Handler) UpdatePromo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input services.PromoInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	promo, err := h.Promos.Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update promo")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Promo updated successfully", promo)
}

func (h *Handler) DeletePromo(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Promos.Delete(id); err != nil {
		respondWithServiceError(ctx, err, "Unable to delete promo")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Promo deleted successfully", nil)
}
