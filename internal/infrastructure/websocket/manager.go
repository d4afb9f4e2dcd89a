package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"telemart/pkg/logger"
)

const (
	MessageTypePing         = "ping"
	MessageTypePong         = "pong"
	MessageTypeNotification = "notification"
	MessageTypeError        = "error"

	sendBuffer = 16
)

// WSMessage is the envelope for every frame exchanged with clients.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Client represents a WebSocket connection client
type Client struct {
	UserID  string
	IsAdmin bool
	Conn    *websocket.Conn
	Send    chan []byte
}

func NewClient(userID string, isAdmin bool, conn *websocket.Conn) *Client {
	return &Client{
		UserID:  userID,
		IsAdmin: isAdmin,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
	}
}

// Manager tracks live connections and fans out notifications. A user may
// hold several connections at once.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	m := &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
	return m
}

// Start runs the manager's main loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				conns, ok := m.clients[client.UserID]
				if !ok {
					conns = make(map[*Client]struct{})
					m.clients[client.UserID] = conns
				}
				conns[client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("websocket client registered: %s (admin=%t)", client.UserID, client.IsAdmin)

			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("websocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; ok {
		delete(conns, client)
		close(client.Send)
	}
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	n := 0
	for _, conns := range m.clients {
		n += len(conns)
	}
	return n
}

func encode(msgType string, data interface{}) []byte {
	b, err := json.Marshal(WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("websocket: failed to encode %s message: %v", msgType, err)
		return nil
	}
	return b
}

// deliver never blocks. A client whose buffer is full misses the frame.
func (m *Manager) deliver(match func(*Client) bool, message []byte) {
	if message == nil {
		return
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, conns := range m.clients {
		for client := range conns {
			if !match(client) {
				continue
			}
			select {
			case client.Send <- message:
			default:
				logger.Warn("websocket: dropping message for slow client %s", client.UserID)
			}
		}
	}
}

func (m *Manager) PushToUser(userID string, payload interface{}) {
	m.deliver(func(c *Client) bool { return c.UserID == userID }, encode(MessageTypeNotification, payload))
}

func (m *Manager) PushToAdmins(payload interface{}) {
	m.deliver(func(c *Client) bool { return c.IsAdmin }, encode(MessageTypeNotification, payload))
}

// HandleClientMessage answers pings. Other inbound frames are ignored since
// the channel is push-only.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendTo(client, encode(MessageTypeError, "Invalid message format"))
		return
	}
	if msg.Type == MessageTypePing {
		m.sendTo(client, encode(MessageTypePong, nil))
	}
}

func (m *Manager) sendTo(client *Client, message []byte) {
	if message == nil {
		return
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if conns, ok := m.clients[client.UserID]; ok {
		if _, ok := conns[client]; ok {
			select {
			case client.Send <- message:
			default:
			}
		}
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error for %s: %v", c.UserID, err)
			}
			return
		}
		m.HandleClientMessage(c, message)
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("websocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
