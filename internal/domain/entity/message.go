package entity

import "time"

// Message is one chat line within a match. Created unread, flipped to read
// exactly once; never edited or deleted. CreatedAt ascending is the canonical
// conversation order.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	MatchID    string    `json:"match_id" firestore:"matchId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Content    string    `json:"content" firestore:"content"`
	ImageURL   string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Read       bool      `json:"read" firestore:"read"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
