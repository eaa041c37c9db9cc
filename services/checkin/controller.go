package checkin

import (
	"context"
	"sync"
	"time"

	"yadori/models"

	"go.uber.org/zap"
)

// StatusSucceeded is the only processor status that starts payment
// verification; anything else is treated as a failed confirmation.
const StatusSucceeded = "succeeded"

const paymentDelayedMessage = "Payment confirmation is taking longer than expected. Please contact staff; do not retry the payment."

const paymentUnavailableMessage = "Payment confirmation is currently unavailable. Please contact staff to confirm your payment."

// ReservationResolver looks up a single reservation by id.
type ReservationResolver interface {
	GetReservation(ctx context.Context, id int) (*models.Reservation, error)
}

// Controller drives the check-in wizard. The machine is linear
// (identify -> verify -> register -> payment -> complete) with a single
// backward edge (verify -> identify): registration is a legal requirement
// and payment must precede door-code disclosure, so steps cannot be skipped.
type Controller struct {
	store    *Store
	resolver ReservationResolver
	checker  StatusChecker
	logger   *zap.Logger

	lookupTimeout   time.Duration
	pollInterval    time.Duration
	pollMaxAttempts int

	mu      sync.Mutex
	pollers map[string]*pollHandle
}

type pollHandle struct {
	cancel context.CancelFunc
}

// ControllerOptions tunes the controller's deadlines and poll budget.
// Zero values fall back to the documented defaults (1s lookup, 3s interval,
// 20 attempts).
type ControllerOptions struct {
	LookupTimeout   time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
}

func NewController(store *Store, resolver ReservationResolver, checker StatusChecker, opts ControllerOptions, logger *zap.Logger) *Controller {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = time.Second
	}
	return &Controller{
		store:           store,
		resolver:        resolver,
		checker:         checker,
		logger:          logger,
		lookupTimeout:   opts.LookupTimeout,
		pollInterval:    opts.PollInterval,
		pollMaxAttempts: opts.PollMaxAttempts,
		pollers:         make(map[string]*pollHandle),
	}
}

// StartSession enters the wizard. With a pre-resolved reservation id (e.g.
// from a scanned code) it performs a single bounded lookup and jumps to
// verify; on failure or absence of an id it falls back to manual
// identification. The lookup is never retried.
func (c *Controller) StartSession(ctx context.Context, sessionID string, reservationID int) models.GuestSession {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep == models.StepComplete {
		return sess
	}

	if reservationID <= 0 || c.resolver == nil {
		return c.store.SetStep(ctx, sessionID, models.StepIdentify)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	res, err := c.resolver.GetReservation(lookupCtx, reservationID)
	if err != nil || res == nil || ValidateReservation(*res) != nil {
		c.logger.Warn("initial booking lookup failed, falling back to manual identification",
			zap.Int("reservationID", reservationID), zap.Error(err))
		return c.store.SetStep(ctx, sessionID, models.StepIdentify)
	}

	c.store.SetBooking(ctx, sessionID, *res)
	return c.store.SetStep(ctx, sessionID, models.StepVerify)
}

// ValidateReservation applies the basic booking invariants: at least one
// guest, and a check-out strictly after the check-in.
func ValidateReservation(res models.Reservation) error {
	if res.GuestCount() <= 0 {
		return ErrInvalidReservation
	}
	if res.CheckOut <= res.CheckIn {
		return ErrInvalidReservation
	}
	return nil
}

// SelectReservation resolves the identify step: the guest picked (or just
// created) a booking, so the wizard advances to verify.
func (c *Controller) SelectReservation(ctx context.Context, sessionID string, res models.Reservation) (models.GuestSession, error) {
	if err := ValidateReservation(res); err != nil {
		return c.store.Get(ctx, sessionID), err
	}
	c.store.SetBooking(ctx, sessionID, res)
	return c.store.SetStep(ctx, sessionID, models.StepVerify), nil
}

// ConfirmIdentity moves verify -> register once the guest confirms the
// displayed booking is theirs.
func (c *Controller) ConfirmIdentity(ctx context.Context, sessionID string) (models.GuestSession, error) {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepVerify {
		return sess, ErrInvalidTransition
	}
	if sess.Booking == nil {
		return sess, ErrNoBooking
	}
	return c.store.SetStep(ctx, sessionID, models.StepRegister), nil
}

// DenyIdentity is the single backward edge: verify -> identify.
func (c *Controller) DenyIdentity(ctx context.Context, sessionID string) (models.GuestSession, error) {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepVerify {
		return sess, ErrInvalidTransition
	}
	return c.store.SetStep(ctx, sessionID, models.StepIdentify), nil
}

// ConfirmRegistration moves register -> payment. Completion of the external
// lodging-register form is self-reported by the guest; there is no
// server-side verification of the form submission.
func (c *Controller) ConfirmRegistration(ctx context.Context, sessionID string) (models.GuestSession, error) {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepRegister {
		return sess, ErrInvalidTransition
	}
	if sess.Booking == nil {
		return sess, ErrNoBooking
	}
	return c.store.SetStep(ctx, sessionID, models.StepPayment), nil
}

// PayAtFrontDesk completes check-in without online payment and without the
// poller: the guest settles the accommodation tax in person.
func (c *Controller) PayAtFrontDesk(ctx context.Context, sessionID string) (models.GuestSession, error) {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepPayment {
		return sess, ErrInvalidTransition
	}
	if sess.Booking == nil {
		return sess, ErrNoBooking
	}
	c.cancelPoller(sessionID)
	return c.store.CompleteCheckIn(ctx, sessionID), nil
}

// ConfirmOnlinePayment takes the processor's terminal status as reported by
// the payment form. Only "succeeded" starts backend verification; any other
// status is surfaced inline and the wizard stays on the payment step so the
// guest may retry.
func (c *Controller) ConfirmOnlinePayment(ctx context.Context, sessionID string, processorStatus string) (models.GuestSession, error) {
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepPayment {
		return sess, ErrInvalidTransition
	}
	if sess.Booking == nil {
		return sess, ErrNoBooking
	}

	if processorStatus != StatusSucceeded {
		updated := c.store.SetPaymentState(ctx, sessionID, models.PaymentFailed, "Payment was not completed. Please try again.")
		return updated, ErrPaymentNotSucceeded
	}

	updated := c.store.SetPaymentState(ctx, sessionID, models.PaymentVerifying, "")
	c.startPoller(sessionID, sess.Booking.ID)
	return updated, nil
}

// startPoller launches the verification task for a session, replacing any
// previous one. The cancel handle is owned here so teardown can clear it.
func (c *Controller) startPoller(sessionID string, reservationID int) {
	pollCtx, cancel := context.WithCancel(context.Background())
	handle := &pollHandle{cancel: cancel}

	c.mu.Lock()
	if prev, ok := c.pollers[sessionID]; ok {
		prev.cancel()
	}
	c.pollers[sessionID] = handle
	c.mu.Unlock()

	poller := &Poller{
		Checker:     c.checker,
		Interval:    c.pollInterval,
		MaxAttempts: c.pollMaxAttempts,
		Logger:      c.logger,
	}

	go func() {
		outcome := poller.Run(pollCtx, reservationID)
		c.applyPollOutcome(sessionID, outcome)

		c.mu.Lock()
		if c.pollers[sessionID] == handle {
			delete(c.pollers, sessionID)
		}
		c.mu.Unlock()
		cancel()
	}()
}

// applyPollOutcome folds a terminal poll result back into the session. A
// result arriving after the session left the payment step is stale and must
// be ignored rather than applied.
func (c *Controller) applyPollOutcome(sessionID string, outcome PollOutcome) {
	ctx := context.Background()
	sess := c.store.Get(ctx, sessionID)
	if sess.CurrentStep != models.StepPayment {
		return
	}

	switch outcome {
	case PollConfirmed:
		c.store.MarkBookingPaid(ctx, sessionID)
		c.store.SetPaymentState(ctx, sessionID, models.PaymentConfirmed, "")
		c.store.CompleteCheckIn(ctx, sessionID)
	case PollDelayed:
		c.store.SetPaymentState(ctx, sessionID, models.PaymentDelayed, paymentDelayedMessage)
	case PollMisconfigured:
		c.store.SetPaymentState(ctx, sessionID, models.PaymentDelayed, paymentUnavailableMessage)
	case PollCancelled:
		// Torn down by checkout or replacement; nothing to record.
	}
}

func (c *Controller) cancelPoller(sessionID string) {
	c.mu.Lock()
	if handle, ok := c.pollers[sessionID]; ok {
		handle.cancel()
		delete(c.pollers, sessionID)
	}
	c.mu.Unlock()
}

// Checkout tears the session down: any live poller is cancelled and the
// state returns to its initial values.
func (c *Controller) Checkout(ctx context.Context, sessionID string) models.GuestSession {
	c.cancelPoller(sessionID)
	return c.store.Reset(ctx, sessionID)
}
