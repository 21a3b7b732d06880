package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Kariqs/kopi-api/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	feedWriteTimeout = 5 * time.Second
	feedSendBuffer   = 16
)

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// OrderFeed pushes order events to connected admin dashboards. Each client
// has its own queue and writer goroutine, so a slow dashboard never holds
// up the broadcaster.
type OrderFeed struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*feedClient]struct{}
}

func NewOrderFeed() *OrderFeed {
	return &OrderFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*feedClient]struct{}),
	}
}

func (f *OrderFeed) OrderPlaced(_ context.Context, event services.OrderPlacedEvent) {
	f.Broadcast(event)
}

// Broadcast queues v as JSON for every client without blocking. A client
// whose queue is full is disconnected.
func (f *OrderFeed) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Println("order feed marshal error:", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- data:
		default:
			f.removeLocked(client)
		}
	}
}

func (f *OrderFeed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// removeLocked drops client once; f.mu must be held.
func (f *OrderFeed) removeLocked(client *feedClient) {
	if _, ok := f.clients[client]; !ok {
		return
	}
	delete(f.clients, client)
	close(client.send)
	client.conn.Close()
}

func (f *OrderFeed) remove(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(client)
}

func (f *OrderFeed) writePump(client *feedClient) {
	for data := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.remove(client)
			return
		}
	}
}

// Serve upgrades the request and keeps the client registered until it
// disconnects. Incoming messages are ignored.
func (f *OrderFeed) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go f.writePump(client)
	defer f.remove(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) OrderFeedSocket(ctx *gin.Context) {
	h.Feed.Serve(ctx.Writer, ctx.Request)
}
