package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
	msgUnauthorized        = "unauthorized"
	msgUploadsDisabled     = "file uploads are not configured"
)

// Handler carries the services every route handler works with.
type Handler struct {
	Store     *repository.Store
	Auth      *services.AuthService
	Catalog   *services.CatalogService
	Carts     *services.CartService
	Checkout  *services.CheckoutService
	Orders    *services.OrderService
	Promos    *services.PromoService
	Users     *services.UserService
	Storage   utils.FileStorage
	Feed      *OrderFeed
	ExposeOTP bool
}

type HandlerOptions struct {
	Auth      services.AuthConfig
	OTP       services.OTPStore
	Mailer    services.Mailer
	Storage   utils.FileStorage
	Notifier  services.OrderNotifier
	ExposeOTP bool
}

// NewHandler wires the services over store. The order feed always receives
// placed orders; opts.Notifier is called after it.
func NewHandler(store *repository.Store, opts HandlerOptions) *Handler {
	feed := NewOrderFeed()
	return &Handler{
		Store:     store,
		Auth:      services.NewAuthService(store, opts.OTP, opts.Mailer, opts.Auth),
		Catalog:   services.NewCatalogService(store),
		Carts:     services.NewCartService(store),
		Checkout:  services.NewCheckoutService(store, services.Notifiers{feed, opts.Notifier}),
		Orders:    services.NewOrderService(store),
		Promos:    services.NewPromoService(store),
		Users:     services.NewUserService(store),
		Storage:   opts.Storage,
		Feed:      feed,
		ExposeOTP: opts.ExposeOTP,
	}
}

func sendJSONResponse(ctx *gin.Context, status int, message string, data any) {
	body := gin.H{"success": status < http.StatusBadRequest, "message": message}
	if data != nil {
		body["data"] = data
	}
	ctx.JSON(status, body)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"success": false, "message": message})
}

// respondWithError logs err, if any, and sends message to the client.
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("%s %s: %s: %v", ctx.Request.Method, ctx.FullPath(), message, err)
	}
	sendErrorResponse(ctx, statusCode, message)
}

// respondWithServiceError reports client errors verbatim and hides the
// rest behind fallback.
func respondWithServiceError(ctx *gin.Context, err error, fallback string) {
	switch services.KindOf(err) {
	case services.KindValidation:
		sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
	case services.KindUnauthorized:
		sendErrorResponse(ctx, http.StatusUnauthorized, err.Error())
	case services.KindNotFound:
		sendErrorResponse(ctx, http.StatusNotFound, err.Error())
	case services.KindConflict:
		sendErrorResponse(ctx, http.StatusConflict, err.Error())
	default:
		respondWithError(ctx, http.StatusInternalServerError, fallback, err)
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// currentUser returns the claims stored by the auth middleware.
func currentUser(ctx *gin.Context) (*utils.Claims, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}

func requireUser(ctx *gin.Context) (*utils.Claims, bool) {
	claims, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgUnauthorized)
		return nil, false
	}
	return claims, true
}

type paginatedResponse struct {
	Items any                   `json:"items"`
	Meta  utils.PaginationMeta  `json:"meta"`
	Links utils.PaginationLinks `json:"links"`
}

func paginated(ctx *gin.Context, items any, page, limit int, total int64) paginatedResponse {
	meta := utils.NewPaginationMeta(page, limit, total)
	return paginatedResponse{Items: items, Meta: meta, Links: utils.BuildLinks(ctx, meta)}
}
