package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
)

const defaultUserLimit = 10

func (h *Handler) GetUsers(ctx *gin.Context) {
	page, limit := utils.ParsePagination(ctx, defaultUserLimit)
	users, total, err := h.Store.Users.List(page, limit)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Users retrieved successfully", paginated(ctx, users, page, limit, total))
}

func (h *Handler) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := h.Store.Users.FindByID(id)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch user", err)
		return
	}
	if user == nil {
		sendErrorResponse(ctx, http.StatusNotFound, services.ErrUserNotFound.Error())
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "User retrieved successfully", user)
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var input services.UserInput
	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	photo, err := h.uploadFormFile(ctx, "photo", "profiles", 0)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	input.PhotoURL = photo

	user, err := h.Users.Create(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to create user")
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, "User created successfully", user)
}

func (h *Handler) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input services.UserInput
	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	photo, err := h.uploadFormFile(ctx, "photo", "profiles", id)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	input.PhotoURL = photo

	user, err := h.Users.Update(ctx.Request.Context(), id, input)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "User updated successfully", user)
}

func (h *Handler) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := h.Users.Delete(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, err, "Unable to delete user")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "User deleted successfully", nil)
}
