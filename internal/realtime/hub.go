// Package realtime pushes registration activity to organizers watching an
// event over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"campusHub/internal/lib/logger/sl"
	"campusHub/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

var ErrHubClosed = errors.New("realtime hub closed")

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	eventID string
}

// Hub fans notifications out to the websocket clients subscribed to the
// notification's event. It implements notify.Sink.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
	closed  bool
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log: log.With(slog.String("component", "realtime")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]struct{}),
	}
}

// Serve upgrades the request and subscribes the connection to eventID
// until the peer goes away or the hub closes. ErrHubClosed is returned
// before anything is written, so the caller still owns the response.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, eventID string) error {
	const op = "realtime.Hub.Serve"

	h.mu.RLock()
	closed := h.closed
	h.mu.RUnlock()
	if closed {
		return ErrHubClosed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("%s: upgrade: %w", op, err)
	}

	c := &client{
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		eventID: eventID,
	}

	if !h.register(c) {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = conn.Close()
		return nil
	}

	h.log.Debug("subscriber connected", slog.String("event_id", eventID), slog.String("remote", conn.RemoteAddr().String()))

	go h.writePump(c)
	go h.readPump(c)

	return nil
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}

	subs, ok := h.clients[c.eventID]
	if !ok {
		subs = make(map[*client]struct{})
		h.clients[c.eventID] = subs
	}
	subs[c] = struct{}{}

	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.clients[c.eventID]
	if !ok {
		return
	}
	if _, ok := subs[c]; !ok {
		return
	}

	delete(subs, c)
	close(c.send)
	if len(subs) == 0 {
		delete(h.clients, c.eventID)
	}
}

// readPump only drains control frames; subscribers do not talk back.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("subscriber read failed", slog.String("event_id", c.eventID), sl.Err(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Warn("subscriber write failed", slog.String("event_id", c.eventID), sl.Err(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish sends n to every subscriber of n.EventID. Slow subscribers whose
// buffer is full miss the message.
func (h *Hub) Publish(_ context.Context, n models.Notification) error {
	const op = "realtime.Hub.Publish"

	msg, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return ErrHubClosed
	}

	for c := range h.clients[n.EventID] {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping message for slow subscriber",
				slog.String("event_id", n.EventID),
				slog.String("type", string(n.Type)),
			)
		}
	}

	return nil
}

// Subscribers returns how many connections watch eventID.
func (h *Hub) Subscribers(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventID])
}

// Close disconnects every subscriber. Later Serve and Publish calls fail
// with ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for eventID, subs := range h.clients {
		for c := range subs {
			close(c.send)
		}
		delete(h.clients, eventID)
	}
}
