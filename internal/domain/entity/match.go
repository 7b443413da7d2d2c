package entity

import "time"

// Match status values. Transitions beyond "pending" are driven by the owners
// through the generic update endpoint; the service does not enforce a state
// machine over them.
const (
	MatchStatusPending   = "pending"
	MatchStatusAccepted  = "accepted"
	MatchStatusRejected  = "rejected"
	MatchStatusCompleted = "completed"
	MatchStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// LastMessage is the denormalized summary of the most recent message, kept as
// a display aid; the message log stays authoritative.
type LastMessage struct {
	Content   string    `json:"content" firestore:"content"`
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// Match pairs exactly one sender listing with one traveler listing and the two
// users that own them. At most one match exists per listing pair.
type Match struct {
	ID                string `json:"id" firestore:"id"`
	SenderListingID   string `json:"sender_listing_id" firestore:"senderListingId"`
	TravelerListingID string `json:"traveler_listing_id" firestore:"travelerListingId"`
	SenderUserID      string `json:"sender_user_id" firestore:"senderUserId"`
	TravelerUserID    string `json:"traveler_user_id" firestore:"travelerUserId"`

	// Denormalized membership sets for array-contains queries.
	ListingIDs []string `json:"listing_ids" firestore:"listingIds"`
	UserIDs    []string `json:"user_ids" firestore:"userIds"`

	Status string `json:"status" firestore:"status"`

	LastMessage   *LastMessage   `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at,omitempty" firestore:"lastMessageAt,omitempty"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`

	MeetingLocation  string    `json:"meeting_location,omitempty" firestore:"meetingLocation,omitempty"`
	MeetingDate      time.Time `json:"meeting_date,omitempty" firestore:"meetingDate,omitempty"`
	MeetingConfirmed bool      `json:"meeting_confirmed" firestore:"meetingConfirmed"`

	AgreedPrice   float64 `json:"agreed_price,omitempty" firestore:"agreedPrice,omitempty"`
	PaymentStatus string  `json:"payment_status" firestore:"paymentStatus"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is one of the two match members.
func (m *Match) HasParticipant(userID string) bool {
	for _, id := range m.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the match member that is not userID. Empty when
// userID is not a participant.
func (m *Match) OtherParticipant(userID string) string {
	for _, id := range m.UserIDs {
		if id != userID {
			return id
		}
	}
	return ""
}

// SortKey is lastMessageAt falling back to createdAt, the ordering key for a
// user's match list.
func (m *Match) SortKey() time.Time {
	if !m.LastMessageAt.IsZero() {
		return m.LastMessageAt
	}
	return m.CreatedAt
}
