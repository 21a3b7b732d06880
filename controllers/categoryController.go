package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCategories(ctx *gin.Context) {
	categories, err := h.Store.Catalog.ListCategories()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *Handler) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	category, err := h.Catalog.Category(id)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to fetch category")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Category retrieved successfully", category)
}

func (h *Handler) CreateCategory(ctx *gin.Context) {
	var input services.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	category, err := h.Catalog.CreateCategory(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to create category")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, "Category created successfully", category)
}

func (h *Handler) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input services.CategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	category, err := h.Catalog.UpdateCategory(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update category")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Category updated successfully", category)
}

func (h *Handler) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Catalog.DeleteCategory(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err, "Unable to delete category")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Category deleted successfully", nil)
}
