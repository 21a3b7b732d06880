package controllers

import (
	"net/http"

	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 4
	defaultOrderLimit   = 10

	msgOrdersFetched       = "Orders retrieved successfully"
	msgOrderFetched        = "Order retrieved successfully"
	msgOrderStatusUpdated  = "Order status updated successfully"
	msgUnableToFetchOrders = "Unable to fetch orders"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type orderStatusEvent struct {
	Type        string `json:"type"`
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
}

// GetOrderHistory lists the caller's orders, newest first.
func (h *Handler) GetOrderHistory(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	page, limit := utils.ParsePagination(ctx, defaultHistoryLimit)
	orders, total, err := h.Orders.History(claims.UserID, services.HistoryParams{
		Status:    ctx.Query("status"),
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
		Month:     ctx.Query("month"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToFetchOrders)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgOrdersFetched, paginated(ctx, orders, page, limit, total))
}

func (h *Handler) GetOrderDetail(ctx *gin.Context) {
	claims, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Detail(claims.UserID, id)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToFetchOrders)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgOrderFetched, order)
}

// GetCheckoutOptions lists the delivery methods, payment methods and order
// statuses clients can choose from.
func (h *Handler) GetCheckoutOptions(ctx *gin.Context) {
	deliveries, err := h.Store.Orders.ListDeliveryMethods()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch options", err)
		return
	}
	payments, err := h.Store.Orders.ListPaymentMethods()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch options", err)
		return
	}
	statuses, err := h.Store.Orders.ListOrderStatuses()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch options", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, "Options retrieved successfully", gin.H{
		"deliveryMethods": deliveries,
		"paymentMethods":  payments,
		"statuses":        statuses,
	})
}

func (h *Handler) GetOrders(ctx *gin.Context) {
	page, limit := utils.ParsePagination(ctx, defaultOrderLimit)
	orders, total, err := h.Store.Orders.ListOrders(page, limit)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, msgUnableToFetchOrders, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgOrdersFetched, paginated(ctx, orders, page, limit, total))
}

func (h *Handler) GetOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		respondWithServiceError(ctx, err, msgUnableToFetchOrders)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, msgOrderFetched, order)
}

func (h *Handler) UpdateOrderStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var input statusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := h.Orders.UpdateStatus(ctx.Request.Context(), id, input.Status)
	if err != nil {
		respondWithServiceError(ctx, err, "Unable to update order status")
		return
	}

	if h.Feed != nil {
		h.Feed.Broadcast(orderStatusEvent{
			Type:        "order_status_changed",
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      input.Status,
		})
	}
	sendJSONResponse(ctx, http.StatusOK, msgOrderStatusUpdated, order)
}
