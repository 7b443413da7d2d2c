package websocket

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents a WebSocket connection client
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	// rooms the client has joined, keyed by match ID
	rooms map[string]bool
	mutex sync.Mutex
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
		rooms:  make(map[string]bool),
	}
}

// Manager manages all active WebSocket connections
type Manager struct {
	clients    map[string]*Client
	matchRooms map[string]map[string]*Client // matchID -> userID -> client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex

	// CanJoinMatch gates room joins to match participants. Nil allows all
	// authenticated clients.
	CanJoinMatch func(userID, matchID string) bool
}

// NewManager creates a new WebSocket connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		matchRooms: make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				// One connection per user; a new connection replaces the old one.
				if old, ok := m.clients[client.UserID]; ok {
					m.removeLocked(old)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				log.Printf("Client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					m.removeLocked(client)
				}
				m.mutex.Unlock()
				log.Printf("Client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// removeLocked drops the client from the user map and every room it joined.
// Caller holds m.mutex.
func (m *Manager) removeLocked(client *Client) {
	delete(m.clients, client.UserID)
	for matchID := range client.rooms {
		if room, ok := m.matchRooms[matchID]; ok {
			delete(room, client.UserID)
			if len(room) == 0 {
				delete(m.matchRooms, matchID)
			}
		}
	}
	close(client.Send)
}

// JoinMatchRoom subscribes the client to events for a match
func (m *Manager) JoinMatchRoom(matchID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	room, ok := m.matchRooms[matchID]
	if !ok {
		room = make(map[string]*Client)
		m.matchRooms[matchID] = room
	}
	room[client.UserID] = client

	client.mutex.Lock()
	client.rooms[matchID] = true
	client.mutex.Unlock()
}

// LeaveMatchRoom unsubscribes the client from events for a match
func (m *Manager) LeaveMatchRoom(matchID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, ok := m.matchRooms[matchID]; ok {
		delete(room, client.UserID)
		if len(room) == 0 {
			delete(m.matchRooms, matchID)
		}
	}

	client.mutex.Lock()
	delete(client.rooms, matchID)
	client.mutex.Unlock()
}

// SendToUser sends a message to a specific user
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
			log.Printf("Dropping message for slow client: %s", userID)
		}
	}
}

// SendToMatchRoom sends a message to everyone subscribed to a match
func (m *Manager) SendToMatchRoom(matchID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for userID, client := range m.matchRooms[matchID] {
		select {
		case client.Send <- message:
		default:
			log.Printf("Dropping room message for slow client: %s", userID)
		}
	}
}

// InMatchRoom reports whether the user has joined the room for a match
func (m *Manager) InMatchRoom(matchID, userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, ok := m.matchRooms[matchID]
	if !ok {
		return false
	}
	_, ok = room[userID]
	return ok
}

// IsOnline reports whether the user currently has an active connection
func (m *Manager) IsOnline(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
