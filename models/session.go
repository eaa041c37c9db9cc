package models

import "time"

// CheckInStep identifies a stage of the check-in wizard. The sequence is
// strictly forward with a single backward edge (verify -> identify).
type CheckInStep string

const (
	StepIdentify CheckInStep = "identify"
	StepVerify   CheckInStep = "verify"
	StepRegister CheckInStep = "register"
	StepPayment  CheckInStep = "payment"
	StepComplete CheckInStep = "complete"
)

// PaymentState tracks the online payment reconciliation for a session.
type PaymentState string

const (
	PaymentIdle      PaymentState = "idle"
	PaymentVerifying PaymentState = "verifying"
	PaymentConfirmed PaymentState = "confirmed"
	PaymentDelayed   PaymentState = "delayed"
	PaymentFailed    PaymentState = "failed"
)

// GuestDetails holds the locally cached registration form fields. The
// register step itself delegates to an external form; these are never
// required to be submitted upstream.
type GuestDetails struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Occupation     string `json:"occupation"`
	Nationality    string `json:"nationality"`
	PassportNumber string `json:"passport_number,omitempty"`
	PassportImage  string `json:"passport_image,omitempty"`
}

// GuestDetailsPatch is a partial update; nil fields are left untouched.
type GuestDetailsPatch struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Occupation     *string `json:"occupation"`
	Nationality    *string `json:"nationality"`
	PassportNumber *string `json:"passport_number"`
	PassportImage  *string `json:"passport_image"`
}

// GuestSession is the wizard session state for one guest tab. It is owned
// by the session store and mutated only through controller transitions.
type GuestSession struct {
	ID           string       `json:"id"`
	CurrentStep  CheckInStep  `json:"currentStep"`
	IsCheckedIn  bool         `json:"isCheckedIn"`
	Booking      *Reservation `json:"booking"`
	GuestDetails GuestDetails `json:"guestDetails"`
	PaymentState PaymentState `json:"paymentState"`
	PaymentError string       `json:"paymentError,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NewGuestSession returns a session in its documented initial state.
func NewGuestSession(id string) *GuestSession {
	now := time.Now()
	return &GuestSession{
		ID:          id,
		CurrentStep: StepIdentify,
		IsCheckedIn: false,
		Booking:     nil,
		GuestDetails: GuestDetails{
			Nationality: "Japan",
		},
		PaymentState: PaymentIdle,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
