package entity

import "time"

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	FullName string `json:"full_name" firestore:"fullName"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	UserType string `json:"user_type" firestore:"userType"` // "sender", "traveler" or "both"
	Country  string `json:"country,omitempty" firestore:"country,omitempty"`
	City     string `json:"city,omitempty" firestore:"city,omitempty"`
	PhotoURL string `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`

	EmailVerified      bool   `json:"email_verified" firestore:"emailVerified"`
	PhoneVerified      bool   `json:"phone_verified" firestore:"phoneVerified"`
	IDVerified         bool   `json:"id_verified" firestore:"idVerified"`
	VerificationStatus string `json:"verification_status" firestore:"verificationStatus"`

	// Aggregate stats, recomputed by the review subsystem.
	Rating              float64 `json:"rating" firestore:"rating"`
	TotalReviews        int     `json:"total_reviews" firestore:"totalReviews"`
	CompletedTrips      int     `json:"completed_trips" firestore:"completedTrips"`
	CompletedDeliveries int     `json:"completed_deliveries" firestore:"completedDeliveries"`

	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	LastActive time.Time `json:"last_active" firestore:"lastActive"`
}
