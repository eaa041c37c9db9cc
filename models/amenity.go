package models

import "time"

// AmenityItem is a requestable catalog entry.
type AmenityItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AmenityRequestItem is one line of a guest's amenity request.
type AmenityRequestItem struct {
	ItemID   int    `bson:"item_id" json:"item_id"`
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity" binding:"required,min=1"`
}

const (
	AmenityRequestPending  = "pending"
	AmenityRequestNotified = "notified"
)

// AmenityRequest is a persisted guest request for room supplies.
type AmenityRequest struct {
	ID        string               `bson:"id" json:"id"`
	SessionID string               `bson:"session_id" json:"session_id"`
	BookingID int                  `bson:"booking_id" json:"booking_id"`
	Items     []AmenityRequestItem `bson:"items" json:"items"`
	Status    string               `bson:"status" json:"status"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// AmenityTaskPayload is the queue payload handed to the staff-notification
// worker.
type AmenityTaskPayload struct {
	RequestID string `json:"requestId"`
	BookingID int    `json:"bookingId"`
	Summary   string `json:"summary"`
}
