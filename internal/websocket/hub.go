package websocket

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeConnected     MessageType = "connected"
	MessageTypeNotifications MessageType = "notifications"
	MessageTypeSyncCompleted MessageType = "sync_completed"
	MessageTypePong          MessageType = "pong"
	MessageTypeError         MessageType = "error"
)

// OutgoingMessage represents a message sent to clients
type OutgoingMessage struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data"`
}

// IncomingMessage represents a message received from clients
type IncomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ConnectedData represents the data sent on connection
type ConnectedData struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// ErrorData represents error message data
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub manages all dashboard WebSocket connections
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	shutdown chan struct{}
	once     sync.Once
	logger   *logrus.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		shutdown:   make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case <-h.shutdown:
			h.closeAllClients()
			return
		}
	}
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown() {
	h.once.Do(func() { close(h.shutdown) })
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.shutdown:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.shutdown:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.logger.WithField("client_id", client.ID).Debug("Dashboard client registered")

	client.SendMessage(&OutgoingMessage{
		Type: MessageTypeConnected,
		Data: ConnectedData{
			ClientID: client.ID,
			Message:  "Connected to notification stream",
		},
	})
	if client.OnConnect != nil {
		client.OnConnect()
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		client.close()
		h.logger.WithField("client_id", client.ID).Debug("Dashboard client unregistered")
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.close()
	}
	h.clients = make(map[string]*Client)
}

// Broadcast sends a message to every connected client
func (h *Hub) Broadcast(messageType MessageType, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	message := &OutgoingMessage{Type: messageType, Data: data}
	for _, client := range h.clients {
		client.SendMessage(message)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
