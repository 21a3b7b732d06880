package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/kopi-api/models"
	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated         = "User created successfully."
	msgLoginSuccess        = "Login successful."
	msgTokenValid          = "Token is valid."
	msgOTPSent             = "Check your email for the password reset code."
	msgPasswordReset       = "Password has been reset successfully."
	msgFailedToRegister    = "failed to create account"
	msgFailedToLogin       = "failed to log in"
	msgResetCodeError      = "There was an error trying to send the reset code. Try again later."
	msgUnableToResetPasswd = "unable to reset password"
)

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Register creates a customer account.
func (h *Handler) Register(ctx *gin.Context) {
	var input services.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, token, err := h.Auth.Register(ctx.Request.Context(), input)
	if err != nil {
		respondWithServiceError(ctx, err, msgFailedToRegister)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, msgUserCreated, authResponse{User: user, Token: token})
}

func (h *Handler) Login(ctx *gin.Context) {
	var input models.LoginData
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, token, err := h.Auth.Login(input)
	if err != nil {
		respondWithServiceError(ctx, err, msgFailedToLogin)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgLoginSuccess, authResponse{User: user, Token: token})
}

// VerifyToken echoes the identity carried by a valid bearer token.
func (h *Handler) VerifyToken(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgTokenValid, gin.H{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  claims.Role,
	})
}

func (h *Handler) ForgotPassword(ctx *gin.Context) {
	var input forgotPasswordRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	code, err := h.Auth.ForgotPassword(ctx.Request.Context(), input.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "user with this email does not exist")
			return
		}
		respondWithError(ctx, http.StatusInternalServerError, msgResetCodeError, err)
		return
	}

	var data any
	if h.ExposeOTP {
		data = gin.H{"otp": code}
	}
	sendJSONResponse(ctx, http.StatusOK, msgOTPSent, data)
}

func (h *Handler) VerifyOTP(ctx *gin.Context) {
	var input services.ResetPasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := h.Auth.ResetPassword(ctx.Request.Context(), input); err != nil {
		respondWithServiceError(ctx, err, msgUnableToResetPasswd)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgPasswordReset, nil)
}
