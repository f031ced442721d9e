package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tesseract-hub/property-service/internal/config"
)

// Client represents a single WebSocket connection
type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	config config.WebSocketConfig

	// mu guards send against use after close
	mu     sync.Mutex
	send   chan []byte
	closed bool

	// OnConnect runs after registration; OnRefresh when the client asks for fresh notifications
	OnConnect func()
	OnRefresh func()
}

// NewClient creates a new WebSocket client
func NewClient(hub *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		send:   make(chan []byte, 256),
		config: cfg,
	}
}

// SendMessage queues a message for the client. Messages are dropped when the buffer is full.
func (c *Client) SendMessage(msg *OutgoingMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.Hub.logger.WithError(err).Error("Error marshaling websocket message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.Hub.logger.WithField("client_id", c.ID).Warn("Client send buffer full, skipping message")
	}
}

// close stops the write pump. Later sends are dropped.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.WithError(err).Warn("WebSocket read error")
			}
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(message []byte) {
	var msg IncomingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.sendError("INVALID_JSON", "Failed to parse message")
		return
	}

	switch msg.Type {
	case "ping":
		c.SendMessage(&OutgoingMessage{
			Type: MessageTypePong,
			Data: map[string]interface{}{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})

	case "refresh":
		if c.OnRefresh != nil {
			c.OnRefresh()
		}

	default:
		c.sendError("UNKNOWN_TYPE", "Unknown message type: "+msg.Type)
	}
}

func (c *Client) sendError(code, message string) {
	c.SendMessage(&OutgoingMessage{
		Type: MessageTypeError,
		Data: ErrorData{
			Code:    code,
			Message: message,
		},
	})
}
