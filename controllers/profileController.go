package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	user, err := h.Store.Users.FindByID(claims.UserID)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch profile", err)
		return
	}
	if user == nil {
		sendErrorResponse(ctx, http.StatusNotFound, services.ErrUserNotFound.Error())
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfile accepts JSON or multipart form data with an optional photo.
func (h *Handler) UpdateProfile(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	var input profileRequest
	if err := ctx.ShouldBind(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	photo, err := h.uploadFormFile(ctx, "photo", "profiles", claims.UserID)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}

	user, err := h.Users.Update(ctx.Request.Context(), claims.UserID, services.UserInput{
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Address:  input.Address,
		PhotoURL: photo,
	})
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update profile")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Profile updated successfully", user)
}
