package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/models"
	ws "github.com/tesseract-hub/property-service/internal/websocket"
)

// checkOrigin accepts browsers from the allowed origins. A "*" entry or an empty
// list accepts every origin; requests without an Origin header are not from browsers.
func checkOrigin(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimRight(o, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(allowed) == 0 || allowed[origin]
	}
}

// NotificationSource derives the current notification list
type NotificationSource interface {
	GetNotifications() []models.Notification
}

// WebSocketHandler streams derived notifications to dashboards
type WebSocketHandler struct {
	hub    *ws.Hub
	source   NotificationSource
	config   config.WebSocketConfig
	upgrader websocket.Upgrader
	logger   *logrus.Logger
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, source NotificationSource, cfg config.WebSocketConfig, allowedOrigins []string, logger *logrus.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		source: source,
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		logger: logger,
	}
}

// Handle upgrades HTTP connection to WebSocket
// GET /api/v1/ws/notifications
func (h *WebSocketHandler) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade WebSocket")
		return
	}

	client := ws.NewClient(h.hub, conn, h.config)
	pushCurrent := func() {
		client.SendMessage(&ws.OutgoingMessage{
			Type: ws.MessageTypeNotifications,
			Data: h.source.GetNotifications(),
		})
	}
	client.OnConnect = pushCurrent
	client.OnRefresh = pushCurrent

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
