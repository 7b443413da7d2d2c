package entity

import "time"

// Listing kinds. A sender posts an item that needs carrying, a traveler posts
// spare luggage space on a flight.
const (
	ListingTypeSender   = "sender"
	ListingTypeTraveler = "traveler"
)

// Listing lifecycle. "matched" is set only as a side effect of match creation
// and is never reverted automatically.
const (
	ListingStatusActive    = "active"
	ListingStatusMatched   = "matched"
	ListingStatusCompleted = "completed"
	ListingStatusCancelled = "cancelled"
)

// SenderDetails is the sender-specific payload of a listing.
type SenderDetails struct {
	ItemType                string   `json:"item_type" firestore:"itemType"`
	ItemDescription         string   `json:"item_description" firestore:"itemDescription"`
	ItemWeight              float64  `json:"item_weight" firestore:"itemWeight"` // kg
	ItemValue               float64  `json:"item_value,omitempty" firestore:"itemValue,omitempty"`
	ItemImages              []string `json:"item_images,omitempty" firestore:"itemImages,omitempty"`
	Fragile                 bool     `json:"fragile" firestore:"fragile"`
	Perishable              bool     `json:"perishable" firestore:"perishable"`
	RequiresSpecialHandling bool     `json:"requires_special_handling" firestore:"requiresSpecialHandling"`
	PreferredTravelerType   string   `json:"preferred_traveler_type,omitempty" firestore:"preferredTravelerType,omitempty"`
	MeetupLocation          string   `json:"meetup_location,omitempty" firestore:"meetupLocation,omitempty"`
	InsuranceRequired       bool     `json:"insurance_required" firestore:"insuranceRequired"`
}

// TravelerDetails is the traveler-specific payload of a listing.
type TravelerDetails struct {
	Airline          string  `json:"airline,omitempty" firestore:"airline,omitempty"`
	FlightNumber     string  `json:"flight_number,omitempty" firestore:"flightNumber,omitempty"`
	DepartureAirport string  `json:"departure_airport,omitempty" firestore:"departureAirport,omitempty"`
	ArrivalAirport   string  `json:"arrival_airport,omitempty" firestore:"arrivalAirport,omitempty"`
	AvailableSpace     float64 `json:"available_space" firestore:"availableSpace"` // kg
	MaxWeightPerItem   float64 `json:"max_weight_per_item,omitempty" firestore:"maxWeightPerItem,omitempty"`
	AcceptsFood        bool    `json:"accepts_food" firestore:"acceptsFood"`
	AcceptsElectronics bool    `json:"accepts_electronics" firestore:"acceptsElectronics"`
	AcceptsDocuments   bool    `json:"accepts_documents" firestore:"acceptsDocuments"`
	AcceptsOther       bool    `json:"accepts_other" firestore:"acceptsOther"`
	AllowsInspection   bool    `json:"allows_inspection" firestore:"allowsInspection"`
	PickupLocation     string  `json:"pickup_location,omitempty" firestore:"pickupLocation,omitempty"`
	DropoffLocation    string  `json:"dropoff_location,omitempty" firestore:"dropoffLocation,omitempty"`
}

// Listing is a posting by exactly one user. The shared base carries the route
// and commercial terms; exactly one of Sender/Traveler is set, matching Type.
type Listing struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`
	Type   string `json:"type" firestore:"type"` // "sender" or "traveler"

	// Route, compared by exact string equality during matching.
	Origin      string `json:"origin" firestore:"origin"`
	Destination string `json:"destination" firestore:"destination"`

	// Target dates: neededByDate for senders, departureDate for travelers.
	DepartureDate time.Time `json:"departure_date,omitempty" firestore:"departureDate,omitempty"`
	NeededByDate  time.Time `json:"needed_by_date,omitempty" firestore:"neededByDate,omitempty"`
	FlexibleDates bool      `json:"flexible_dates" firestore:"flexibleDates"`

	Price         float64 `json:"price" firestore:"price"`
	PriceCurrency string  `json:"price_currency" firestore:"priceCurrency"`
	Negotiable    bool    `json:"negotiable" firestore:"negotiable"`

	Status  string `json:"status" firestore:"status"`
	Views   int    `json:"views" firestore:"views"`
	Matches int    `json:"matches" firestore:"matches"`

	Sender   *SenderDetails   `json:"sender,omitempty" firestore:"sender,omitempty"`
	Traveler *TravelerDetails `json:"traveler,omitempty" firestore:"traveler,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// OppositeType returns the listing kind this listing matches against.
func (l *Listing) OppositeType() string {
	if l.Type == ListingTypeSender {
		return ListingTypeTraveler
	}
	return ListingTypeSender
}
