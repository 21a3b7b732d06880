package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Kariqs/kopi-api/utils"
	"github.com/go-resty/resty/v2"
)

type OrderPlacedEvent struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      uint      `json:"userId"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	ItemCount   int       `json:"itemCount"`
	PlacedAt    time.Time `json:"placedAt"`
}

// OrderNotifier is told about orders after they commit. Implementations must
// not block the caller for long and must not fail the order.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, event OrderPlacedEvent)
}

// Notifiers fans an event out to every notifier in order.
type Notifiers []OrderNotifier

func (n Notifiers) OrderPlaced(ctx context.Context, event OrderPlacedEvent) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.OrderPlaced(ctx, event)
		}
	}
}

// WebhookNotifier posts order events as JSON to an external URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &WebhookNotifier{client: client, url: url}
}

func (w *WebhookNotifier) Send(ctx context.Context, event OrderPlacedEvent) error {
	resp, err := w.client.R().SetContext(ctx).SetBody(event).Post(w.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded %s", resp.Status())
	}
	return nil
}

// OrderPlaced delivers in the background so the checkout response is not
// held up by the remote endpoint.
func (w *WebhookNotifier) OrderPlaced(ctx context.Context, event OrderPlacedEvent) {
	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := w.Send(sendCtx, event); err != nil {
			utils.LogEvent(utils.LogFields{
				Component:   "webhook",
				Step:        "order_placed",
				Status:      "failed",
				OrderNumber: event.OrderNumber,
				Message:     err.Error(),
			})
			return
		}
		utils.LogEvent(utils.LogFields{Component: "webhook", Step: "order_placed", Status: "delivered", OrderNumber: event.OrderNumber})
	}()
}
