package entity

import "time"

const (
	NotificationTypeMessage = "message"
	NotificationTypeMatch   = "match"
	NotificationTypeReview  = "review"
	NotificationTypeSystem  = "system"
)

type Notification struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	Type      string    `json:"type" firestore:"type"`
	Title     string    `json:"title" firestore:"title"`
	Message   string    `json:"message" firestore:"message"`
	Read      bool      `json:"read" firestore:"read"`
	Link      string    `json:"link,omitempty" firestore:"link,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
