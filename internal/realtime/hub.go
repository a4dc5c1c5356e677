package realtime

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventReceiveNotification = "ReceiveNotification"

var ErrConnectionClosed = errors.New("connection closed")

type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Her bağlantının kendi yazma kilidi var; aynı sokete eşzamanlı yazım yapılmaz.
// websocket.Conn is pooled and reused by the next upgrade once the handler
// returns, so a closed client must never touch conn again.
type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

func (c *client) write(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnectionClosed
	}
	return c.conn.WriteJSON(msg)
}

// close waits for an in-flight write and blocks every later one.
func (c *client) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Hub owns the websocket connections and the registry that maps them to users.
type Hub struct {
	registry *Registry
	mu       sync.RWMutex
	clients  map[string]*client
	logger   *zap.Logger
}

func NewHub(registry *Registry, logger *zap.Logger) *Hub {
	return &Hub{
		registry: registry,
		clients:  make(map[string]*client),
		logger:   logger,
	}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// Upgrade rejects non-websocket requests before the handler runs.
func (h *Hub) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler expects userID in the connection locals, set by the auth middleware.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("userID").(uint)
		if !ok || userID == 0 {
			_ = conn.Close()
			return
		}

		connID := uuid.NewString()
		h.add(connID, userID, conn)
		defer h.remove(connID)

		h.logger.Debug("websocket connected", zap.String("conn_id", connID), zap.Uint("user_id", userID))

		// İstemciden gelen mesajlar yok sayılır; okuma döngüsü yalnızca kopmayı algılar.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func (h *Hub) add(connID string, userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[connID] = &client{conn: conn}
	h.mu.Unlock()
	h.registry.Register(connID, userID)
}

// remove runs inside the websocket handler, before the connection goes back
// to the pool.
func (h *Hub) remove(connID string) {
	h.registry.Unregister(connID)
	h.mu.Lock()
	c, ok := h.clients[connID]
	delete(h.clients, connID)
	h.mu.Unlock()
	if ok {
		c.close()
	}
	h.logger.Debug("websocket disconnected", zap.String("conn_id", connID))
}

// Push sends an event to one connection.
func (h *Hub) Push(ctx context.Context, connID, event string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return ErrConnectionClosed
	}

	return c.write(Message{Event: event, Payload: payload})
}
