package websocket

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesseract-hub/property-service/internal/config"
)

var testConfig = config.WebSocketConfig{
	WriteWait:      time.Second,
	PongWait:       5 * time.Second,
	PingInterval:   4 * time.Second,
	MaxMessageSize: 4096,
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hub := NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Shutdown)
	return hub
}

func newTestServer(t *testing.T, hub *Hub, onRefresh func(*Client)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		client := NewClient(hub, conn, testConfig)
		if onRefresh != nil {
			client.OnRefresh = func() { onRefresh(client) }
		}
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) OutgoingMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg OutgoingMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_ConnectAndBroadcast(t *testing.T) {
	hub := newTestHub(t)
	srv := newTestServer(t, hub, nil)
	conn := dial(t, srv)

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeConnected, msg.Type)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(MessageTypeNotifications, []string{"Rent overdue"})
	msg = readMessage(t, conn)
	assert.Equal(t, MessageTypeNotifications, msg.Type)
	assert.Equal(t, []interface{}{"Rent overdue"}, msg.Data)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub := newTestHub(t)
	srv := newTestServer(t, hub, nil)
	conn := dial(t, srv)
	readMessage(t, conn)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestClient_Messages(t *testing.T) {
	hub := newTestHub(t)
	srv := newTestServer(t, hub, func(c *Client) {
		c.SendMessage(&OutgoingMessage{Type: MessageTypeNotifications, Data: []string{}})
	})
	conn := dial(t, srv)
	readMessage(t, conn)

	tests := []struct {
		name string
		send string
		want MessageType
	}{
		{"ping", `{"type":"ping"}`, MessageTypePong},
		{"refresh", `{"type":"refresh"}`, MessageTypeNotifications},
		{"unknown type", `{"type":"subscribe"}`, MessageTypeError},
		{"invalid json", `{not json`, MessageTypeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.send)))
			msg := readMessage(t, conn)
			assert.Equal(t, tt.want, msg.Type)
		})
	}
}

func TestClient_SendDuringShutdownIsDropped(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	hub := NewHub(logger)
	client := NewClient(hub, nil, testConfig)
	hub.clients[client.ID] = client

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				client.handleMessage([]byte(`{"type":"ping"}`))
			}
		}()
	}
	hub.closeAllClients()
	wg.Wait()

	assert.NotPanics(t, func() { client.SendMessage(&OutgoingMessage{Type: MessageTypePong}) })
	assert.NotPanics(t, client.close)
	assert.Zero(t, hub.ClientCount())
}
