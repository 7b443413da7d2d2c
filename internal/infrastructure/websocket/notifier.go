package websocket

import (
	"carrylink/internal/domain/entity"
)

// Notifier adapts the connection manager to the realtime interface the use
// cases depend on.
type Notifier struct {
	manager *Manager
}

func NewNotifier(manager *Manager) *Notifier {
	return &Notifier{manager: manager}
}

func (n *Notifier) NotifyMatch(userID string, match *entity.Match) {
	n.manager.PushToUser(userID, NewEvent(EventTypeMatchUpdate, match.ID, match))
}

func (n *Notifier) NotifyMessage(matchID string, message *entity.Message) {
	n.manager.PushToMatchRoom(matchID, NewEvent(EventTypeNewMessage, matchID, message))

	// Receivers not currently in the room still get the message on their
	// connection, so match lists can update unread badges live.
	if !n.manager.InMatchRoom(matchID, message.ReceiverID) {
		n.manager.PushToUser(message.ReceiverID, NewEvent(EventTypeNewMessage, matchID, message))
	}
}

func (n *Notifier) NotifyRead(matchID, readerID string, count int) {
	n.manager.BroadcastToMatchRoomExcept(matchID, readerID, NewEvent(EventTypeReadReceipt, matchID, ReadReceiptData{
		MatchID:  matchID,
		ReaderID: readerID,
		Count:    count,
	}))
}

func (n *Notifier) IsOnline(userID string) bool {
	return n.manager.IsOnline(userID)
}
