package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

const feedWriteTimeout = 5 * time.Second

// FeedEvent is pushed to every connected admin.
type FeedEvent struct {
	Type  string      `json:"type"`
	Order model.Order `json:"order"`
}

type feedClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// OrderFeed broadcasts new orders to admins over websocket.
type OrderFeed struct {
	Upgrader websocket.Upgrader
	Logger   echo.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

func NewOrderFeed(logger echo.Logger) *OrderFeed {
	if logger == nil {
		logger = log.New("feed")
	}
	return &OrderFeed{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Logger:  logger,
		clients: make(map[*feedClient]struct{}),
	}
}

// Serve upgrades the request and keeps the connection registered until
// the client goes away.
func (f *OrderFeed) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := f.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	cl := &feedClient{conn: conn}
	f.mu.Lock()
	f.clients[cl] = struct{}{}
	f.mu.Unlock()
	defer f.drop(cl)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

func (f *OrderFeed) drop(cl *feedClient) {
	f.mu.Lock()
	_, ok := f.clients[cl]
	delete(f.clients, cl)
	f.mu.Unlock()
	if ok {
		cl.conn.Close()
	}
}

// Clients returns the number of connected admins.
func (f *OrderFeed) Clients() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *OrderFeed) NotifyOrder(ctx context.Context, order model.Order, summary string) error {
	return f.Publish("order.created", order)
}

// Publish sends an event to every client. Clients that fail to receive it
// are disconnected.
func (f *OrderFeed) Publish(eventType string, order model.Order) error {
	data, err := json.Marshal(FeedEvent{Type: eventType, Order: order})
	if err != nil {
		return err
	}

	f.mu.Lock()
	clients := make([]*feedClient, 0, len(f.clients))
	for cl := range f.clients {
		clients = append(clients, cl)
	}
	f.mu.Unlock()

	var errs []error
	for _, cl := range clients {
		cl.mu.Lock()
		cl.conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		err := cl.conn.WriteMessage(websocket.TextMessage, data)
		cl.mu.Unlock()
		if err != nil {
			f.drop(cl)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		f.Logger.Debugj(log.JSON{"op": "feed_publish", "failed": len(errs), "clients": len(clients)})
	}
	return errors.Join(errs...)
}
