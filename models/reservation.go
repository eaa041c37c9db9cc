package models

import "time"

// Reservation mirrors the external reservations API payload. The portal
// consumes it read-only; all fields keep the wire names of the upstream API.
type Reservation struct {
	ID       int `json:"id"`
	Facility int `json:"facility"`

	Beds24BookingID int `json:"beds24_booking_id"`

	Status       string `json:"status"`
	Referer      string `json:"referer"`
	APIReference string `json:"api_reference"`

	// Calendar dates, YYYY-MM-DD, no time component.
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`

	GuestName    string `json:"guest_name"`
	GuestCountry string `json:"guest_country"`

	NumAdult int `json:"num_adult"`
	NumChild int `json:"num_child"`

	TotalPrice       *float64 `json:"total_price"`
	Comission        *float64 `json:"comission"`
	AccommodationTax *float64 `json:"accommodation_tax"`
	IsPaid           bool     `json:"is_paid"`

	BookingTime time.Time  `json:"booking_time"`
	CreateAt    time.Time  `json:"create_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

// GuestCount returns the total number of guests on the reservation.
func (r Reservation) GuestCount() int {
	return r.NumAdult + r.NumChild
}

// ReservationStatus is the minimal payment-state view returned by the
// upstream status endpoint.
type ReservationStatus struct {
	IsPaid bool   `json:"is_paid"`
	Status string `json:"status"`
}

// CreateReservationInput is the payload for creating a walk-in reservation.
type CreateReservationInput struct {
	GuestName  string `json:"guest_name" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     int    `json:"guests" binding:"required,min=1"`
	FacilityID int    `json:"facility_id,omitempty"`
}
