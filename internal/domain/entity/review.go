package entity

import "time"

// Review is written by one match participant about the other after delivery.
type Review struct {
	ID             string    `json:"id" firestore:"id"`
	MatchID        string    `json:"match_id" firestore:"matchId"`
	ReviewerID     string    `json:"reviewer_id" firestore:"reviewerId"`
	RevieweeID     string    `json:"reviewee_id" firestore:"revieweeId"`
	ListingID      string    `json:"listing_id" firestore:"listingId"`
	Rating         int       `json:"rating" firestore:"rating"` // 1..5
	Title          string    `json:"title" firestore:"title"`
	Content        string    `json:"content" firestore:"content"`
	WouldRecommend bool      `json:"would_recommend" firestore:"wouldRecommend"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}
