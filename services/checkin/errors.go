package checkin

import "errors"

var (
	// ErrNoBooking is returned when a transition requires a resolved booking.
	ErrNoBooking = errors.New("no booking selected for this session")

	// ErrInvalidTransition is returned when an action is not legal from the
	// session's current step.
	ErrInvalidTransition = errors.New("action not allowed from current step")

	// ErrInvalidReservation is returned when a reservation fails basic
	// sanity checks (guest counts, stay window).
	ErrInvalidReservation = errors.New("reservation failed validation")

	// ErrPaymentNotSucceeded is returned when the payment processor reported
	// a terminal status other than succeeded.
	ErrPaymentNotSucceeded = errors.New("payment processor did not report success")
)
