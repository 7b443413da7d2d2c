package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket event types
const (
	EventTypePing        = "ping"
	EventTypePong        = "pong"
	EventTypeJoinMatch   = "join_match"
	EventTypeLeaveMatch  = "leave_match"
	EventTypeTyping      = "typing"
	EventTypeNewMessage  = "new_message"
	EventTypeReadReceipt = "read_receipt"
	EventTypeMatchUpdate = "match_update"
	EventTypeError       = "error"
)

// Event is the envelope for every frame on the socket
type Event struct {
	Type      string      `json:"type"`
	MatchID   string      `json:"match_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type TypingData struct {
	MatchID string `json:"match_id"`
	UserID  string `json:"user_id"`
	Typing  bool   `json:"typing"`
}

type ReadReceiptData struct {
	MatchID  string `json:"match_id"`
	ReaderID string `json:"reader_id"`
	Count    int    `json:"count"`
}

// NewEvent builds an envelope stamped with the current time
func NewEvent(eventType, matchID string, data interface{}) Event {
	return Event{
		Type:      eventType,
		MatchID:   matchID,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// HandleClientEvent processes incoming WebSocket frames
func (m *Manager) HandleClientEvent(client *Client, frame []byte) {
	var event Event

	if err := json.Unmarshal(frame, &event); err != nil {
		log.Printf("WebSocket: Failed to unmarshal frame from client %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch event.Type {
	case EventTypePing:
		m.sendToClient(client, NewEvent(EventTypePong, "", map[string]string{"status": "alive"}))

	case EventTypeJoinMatch:
		if event.MatchID == "" {
			m.sendErrorToClient(client, "Missing match_id")
			return
		}
		if m.CanJoinMatch != nil && !m.CanJoinMatch(client.UserID, event.MatchID) {
			m.sendErrorToClient(client, "You are not a participant of this match")
			return
		}
		m.JoinMatchRoom(event.MatchID, client)
		log.Printf("WebSocket: Client %s joined match room %s", client.UserID, event.MatchID)

	case EventTypeLeaveMatch:
		if event.MatchID == "" {
			m.sendErrorToClient(client, "Missing match_id")
			return
		}
		m.LeaveMatchRoom(event.MatchID, client)
		log.Printf("WebSocket: Client %s left match room %s", client.UserID, event.MatchID)

	case EventTypeTyping:
		m.handleTyping(client, event)

	default:
		log.Printf("WebSocket: Unknown event type '%s' from client %s", event.Type, client.UserID)
		m.sendErrorToClient(client, "Unknown event type")
	}
}

func (m *Manager) handleTyping(client *Client, event Event) {
	if event.MatchID == "" {
		m.sendErrorToClient(client, "Missing match_id")
		return
	}

	typing := true
	if data, ok := event.Data.(map[string]interface{}); ok {
		if v, ok := data["typing"].(bool); ok {
			typing = v
		}
	}

	out := NewEvent(EventTypeTyping, event.MatchID, TypingData{
		MatchID: event.MatchID,
		UserID:  client.UserID,
		Typing:  typing,
	})
	m.BroadcastToMatchRoomExcept(event.MatchID, client.UserID, out)
}

// PushToUser marshals and sends an event to a single user
func (m *Manager) PushToUser(userID string, event Event) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal event for user %s: %v", userID, err)
		return
	}
	m.SendToUser(userID, frame)
}

// PushToMatchRoom marshals and sends an event to every room member
func (m *Manager) PushToMatchRoom(matchID string, event Event) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal event for match %s: %v", matchID, err)
		return
	}
	m.SendToMatchRoom(matchID, frame)
}

// BroadcastToMatchRoomExcept sends an event to every room member but one
func (m *Manager) BroadcastToMatchRoomExcept(matchID, exceptUserID string, event Event) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal event for match %s: %v", matchID, err)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for userID, client := range m.matchRooms[matchID] {
		if userID == exceptUserID {
			continue
		}
		select {
		case client.Send <- frame:
		default:
			log.Printf("Dropping room event for slow client: %s", userID)
		}
	}
}

func (m *Manager) sendToClient(client *Client, event Event) {
	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket: Failed to marshal event for client %s: %v", client.UserID, err)
		return
	}

	select {
	case client.Send <- frame:
	default:
		log.Printf("WebSocket: Client %s send channel full, dropping event", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, NewEvent(EventTypeError, "", map[string]string{
		"error":   errorMsg,
		"user_id": client.UserID,
	}))
}

// ReadPump reads frames from the WebSocket connection
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		m.HandleClientEvent(c, frame)
	}
}

// WritePump sends frames to the WebSocket connection
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		frame, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Printf("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
