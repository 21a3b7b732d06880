package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierSend(t *testing.T) {
	received := make(chan OrderPlacedEvent, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var event OrderPlacedEvent
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, time.Second)
	err := notifier.Send(context.Background(), OrderPlacedEvent{Type: "order_placed", OrderNumber: "ORD-1", Total: 5000})
	require.NoError(t, err)

	event := <-received
	assert.Equal(t, "ORD-1", event.OrderNumber)
	assert.Equal(t, int64(5000), event.Total)
}

func TestWebhookNotifierReportsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, time.Second)
	assert.Error(t, notifier.Send(context.Background(), OrderPlacedEvent{OrderNumber: "ORD-2"}))
}

func TestNotifiersFanOut(t *testing.T) {
	first, second := &recordingNotifier{}, &recordingNotifier{}
	Notifiers{first, nil, second}.OrderPlaced(context.Background(), OrderPlacedEvent{OrderNumber: "ORD-3"})

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
}
