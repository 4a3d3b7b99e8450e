// Package realtime pushes change notifications to connected dashboards
// over WebSocket. Events carry no payload beyond the entity kind: the
// client re-fetches and the server re-aggregates, mirroring the AMQP
// contract.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
)

const writeTimeout = 10 * time.Second

// Event tells a connected dashboard that rows of one kind changed.
type Event struct {
	Kind core.RecordKind `json:"kind"`
	At   time.Time       `json:"at"`
}

type client struct {
	id     string
	userID int64
	conn   *websocket.Conn
}

// Hub tracks connected dashboard clients per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	logger  *applog.Logger
}

func NewHub(logger *applog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*client),
		logger:  logger.WithComponent(applog.ComponentRealtime),
	}
}

// Subscribe upgrades the request to a WebSocket and keeps the connection
// registered until the peer disconnects or the context ends. It blocks,
// so it is meant to be the tail of an HTTP handler.
func (h *Hub) Subscribe(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
	}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.InfoContext(ctx, "Dashboard client connected",
		applog.FieldUserID, userID, "client_id", c.id)

	defer func() {
		h.remove(c.id)
		conn.Close(websocket.StatusNormalClosure, "")
		h.logger.InfoContext(ctx, "Dashboard client disconnected",
			applog.FieldUserID, userID, "client_id", c.id)
	}()

	// Inbound messages are ignored; the read loop only detects closure.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return nil
		}
	}
}

// Broadcast sends a change event to every client of one user. Clients
// whose connection fails are dropped.
func (h *Hub) Broadcast(ctx context.Context, userID int64, kind core.RecordKind) {
	payload, err := json.Marshal(Event{Kind: kind, At: time.Now()})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to marshal event", applog.FieldError, err)
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.userID == userID {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.conn.Write(writeCtx, websocket.MessageText, payload)
		cancel()
		if err != nil {
			h.logger.WarnContext(ctx, "Dropping unreachable client",
				applog.FieldUserID, userID, "client_id", c.id, applog.FieldError, err)
			h.remove(c.id)
			c.conn.Close(websocket.StatusGoingAway, "write failed")
		}
	}
}

// ClientCount returns the number of open connections for one user.
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, c := range h.clients {
		if c.userID == userID {
			n++
		}
	}
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.conn.Close(websocket.StatusGoingAway, "server shutting down")
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
}
