package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"yadori/models"

	"go.uber.org/zap"
)

type fakeResolver struct {
	reservations map[int]models.Reservation
	err          error
}

func (r *fakeResolver) GetReservation(_ context.Context, id int) (*models.Reservation, error) {
	if r.err != nil {
		return nil, r.err
	}
	if res, ok := r.reservations[id]; ok {
		return &res, nil
	}
	return nil, errors.New("not found")
}

func newTestController(resolver ReservationResolver, checker StatusChecker, maxAttempts int) (*Controller, *Store) {
	store := NewStore(newMemoryPersister(), zap.NewNop())
	ctrl := NewController(store, resolver, checker, ControllerOptions{
		LookupTimeout:   100 * time.Millisecond,
		PollInterval:    time.Millisecond,
		PollMaxAttempts: maxAttempts,
	}, zap.NewNop())
	return ctrl, store
}

// waitForPaymentState polls the store until the session reaches the wanted
// payment state or the deadline passes.
func waitForPaymentState(t *testing.T, store *Store, sessionID string, want models.PaymentState) models.GuestSession {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sess := store.Get(context.Background(), sessionID)
		if sess.PaymentState == want {
			return sess
		}
		time.Sleep(time.Millisecond)
	}
	sess := store.Get(context.Background(), sessionID)
	t.Fatalf("payment state = %q, want %q", sess.PaymentState, want)
	return sess
}

func TestStartSessionWithoutReservationID(t *testing.T) {
	ctrl, _ := newTestController(&fakeResolver{}, nil, 1)

	sess := ctrl.StartSession(context.Background(), "s1", 0)
	if sess.CurrentStep != models.StepIdentify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepIdentify)
	}
}

func TestStartSessionWithKnownReservation(t *testing.T) {
	resolver := &fakeResolver{reservations: map[int]models.Reservation{
		7: testReservation(7),
	}}
	ctrl, _ := newTestController(resolver, nil, 1)

	sess := ctrl.StartSession(context.Background(), "s1", 7)
	if sess.CurrentStep != models.StepVerify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepVerify)
	}
	if sess.Booking == nil || sess.Booking.ID != 7 {
		t.Errorf("Booking = %+v, want ID 7", sess.Booking)
	}
}

func TestStartSessionLookupFailureFallsBackToIdentify(t *testing.T) {
	ctrl, _ := newTestController(&fakeResolver{err: errors.New("upstream down")}, nil, 1)

	sess := ctrl.StartSession(context.Background(), "s1", 7)
	if sess.CurrentStep != models.StepIdentify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepIdentify)
	}
}

func TestStartSessionInvalidReservationFallsBackToIdentify(t *testing.T) {
	invalid := testReservation(7)
	invalid.NumAdult = 0
	resolver := &fakeResolver{reservations: map[int]models.Reservation{7: invalid}}
	ctrl, _ := newTestController(resolver, nil, 1)

	sess := ctrl.StartSession(context.Background(), "s1", 7)
	if sess.CurrentStep != models.StepIdentify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepIdentify)
	}
}

func TestStartSessionLeavesCompletedSessionAlone(t *testing.T) {
	ctx := context.Background()
	ctrl, store := newTestController(&fakeResolver{}, nil, 1)
	store.CompleteCheckIn(ctx, "s1")

	sess := ctrl.StartSession(ctx, "s1", 0)
	if sess.CurrentStep != models.StepComplete || !sess.IsCheckedIn {
		t.Errorf("completed session was disturbed: %+v", sess)
	}
}

func TestSelectReservationRejectsInvalidBooking(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(&fakeResolver{}, nil, 1)

	bad := testReservation(7)
	bad.CheckOut = bad.CheckIn
	if _, err := ctrl.SelectReservation(ctx, "s1", bad); !errors.Is(err, ErrInvalidReservation) {
		t.Errorf("err = %v, want ErrInvalidReservation", err)
	}
}

func TestTransitionGuards(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(&fakeResolver{}, nil, 1)

	// All forward transitions are illegal from the initial identify step.
	if _, err := ctrl.ConfirmIdentity(ctx, "s1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ConfirmIdentity err = %v, want ErrInvalidTransition", err)
	}
	if _, err := ctrl.DenyIdentity(ctx, "s1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("DenyIdentity err = %v, want ErrInvalidTransition", err)
	}
	if _, err := ctrl.ConfirmRegistration(ctx, "s1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ConfirmRegistration err = %v, want ErrInvalidTransition", err)
	}
	if _, err := ctrl.PayAtFrontDesk(ctx, "s1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("PayAtFrontDesk err = %v, want ErrInvalidTransition", err)
	}
	if _, err := ctrl.ConfirmOnlinePayment(ctx, "s1", StatusSucceeded); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ConfirmOnlinePayment err = %v, want ErrInvalidTransition", err)
	}
}

func TestDenyIdentityReturnsToIdentify(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(&fakeResolver{}, nil, 1)

	if _, err := ctrl.SelectReservation(ctx, "s1", testReservation(7)); err != nil {
		t.Fatalf("SelectReservation: %v", err)
	}
	sess, err := ctrl.DenyIdentity(ctx, "s1")
	if err != nil {
		t.Fatalf("DenyIdentity: %v", err)
	}
	if sess.CurrentStep != models.StepIdentify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepIdentify)
	}
	if sess.Booking == nil {
		t.Error("booking was dropped on deny; it should stay for re-selection")
	}
}

func TestFullFlowWithFrontDeskPayment(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(&fakeResolver{}, nil, 1)

	if _, err := ctrl.SelectReservation(ctx, "s1", testReservation(7)); err != nil {
		t.Fatalf("SelectReservation: %v", err)
	}
	if _, err := ctrl.ConfirmIdentity(ctx, "s1"); err != nil {
		t.Fatalf("ConfirmIdentity: %v", err)
	}
	if _, err := ctrl.ConfirmRegistration(ctx, "s1"); err != nil {
		t.Fatalf("ConfirmRegistration: %v", err)
	}
	sess, err := ctrl.PayAtFrontDesk(ctx, "s1")
	if err != nil {
		t.Fatalf("PayAtFrontDesk: %v", err)
	}
	if !sess.IsCheckedIn || sess.CurrentStep != models.StepComplete {
		t.Errorf("session after front desk payment = %+v, want checked in and complete", sess)
	}
	if sess.Booking.IsPaid {
		t.Error("front desk payment must not mark the booking paid")
	}
}

func advanceToPayment(t *testing.T, ctrl *Controller, sessionID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := ctrl.SelectReservation(ctx, sessionID, testReservation(7)); err != nil {
		t.Fatalf("SelectReservation: %v", err)
	}
	if _, err := ctrl.ConfirmIdentity(ctx, sessionID); err != nil {
		t.Fatalf("ConfirmIdentity: %v", err)
	}
	if _, err := ctrl.ConfirmRegistration(ctx, sessionID); err != nil {
		t.Fatalf("ConfirmRegistration: %v", err)
	}
}

func TestConfirmOnlinePaymentRejectsFailedStatus(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(&fakeResolver{}, &scriptedChecker{script: []statusReply{{paid: true}}}, 1)
	advanceToPayment(t, ctrl, "s1")

	sess, err := ctrl.ConfirmOnlinePayment(ctx, "s1", "requires_payment_method")
	if !errors.Is(err, ErrPaymentNotSucceeded) {
		t.Fatalf("err = %v, want ErrPaymentNotSucceeded", err)
	}
	if sess.PaymentState != models.PaymentFailed {
		t.Errorf("PaymentState = %q, want %q", sess.PaymentState, models.PaymentFailed)
	}
	if sess.CurrentStep != models.StepPayment {
		t.Errorf("CurrentStep = %q, guest must stay on payment to retry", sess.CurrentStep)
	}
}

func TestConfirmOnlinePaymentCompletesWhenBackendConfirms(t *testing.T) {
	ctx := context.Background()
	checker := &scriptedChecker{script: []statusReply{
		{paid: false},
		{paid: true},
	}}
	ctrl, store := newTestController(&fakeResolver{}, checker, 20)
	advanceToPayment(t, ctrl, "s1")

	sess, err := ctrl.ConfirmOnlinePayment(ctx, "s1", StatusSucceeded)
	if err != nil {
		t.Fatalf("ConfirmOnlinePayment: %v", err)
	}
	if sess.PaymentState != models.PaymentVerifying {
		t.Errorf("PaymentState = %q, want %q", sess.PaymentState, models.PaymentVerifying)
	}

	final := waitForPaymentState(t, store, "s1", models.PaymentConfirmed)
	if !final.IsCheckedIn || final.CurrentStep != models.StepComplete {
		t.Errorf("session after confirmation = %+v, want checked in and complete", final)
	}
	if final.Booking == nil || !final.Booking.IsPaid {
		t.Error("booking not marked paid after confirmation")
	}
}

func TestConfirmOnlinePaymentDelaysWhenBackendNeverConfirms(t *testing.T) {
	ctx := context.Background()
	checker := &scriptedChecker{script: []statusReply{{paid: false}}}
	ctrl, store := newTestController(&fakeResolver{}, checker, 3)
	advanceToPayment(t, ctrl, "s1")

	if _, err := ctrl.ConfirmOnlinePayment(ctx, "s1", StatusSucceeded); err != nil {
		t.Fatalf("ConfirmOnlinePayment: %v", err)
	}

	sess := waitForPaymentState(t, store, "s1", models.PaymentDelayed)
	if sess.IsCheckedIn {
		t.Error("delayed payment must not complete check-in")
	}
	if sess.PaymentError == "" {
		t.Error("delayed payment should carry a guest-facing message")
	}
}

func TestCheckoutCancelsPollerAndResets(t *testing.T) {
	ctx := context.Background()
	checker := &scriptedChecker{script: []statusReply{{paid: false}}}
	ctrl, _ := newTestController(&fakeResolver{}, checker, 1000)
	advanceToPayment(t, ctrl, "s1")

	if _, err := ctrl.ConfirmOnlinePayment(ctx, "s1", StatusSucceeded); err != nil {
		t.Fatalf("ConfirmOnlinePayment: %v", err)
	}

	sess := ctrl.Checkout(ctx, "s1")
	if sess.CurrentStep != models.StepIdentify || sess.Booking != nil || sess.IsCheckedIn {
		t.Errorf("session after checkout = %+v, want initial state", sess)
	}

	// The cancelled poller must not resurrect any payment state.
	time.Sleep(20 * time.Millisecond)
	if got := ctrl.store.Get(ctx, "s1"); got.PaymentState != models.PaymentIdle {
		t.Errorf("PaymentState = %q after checkout, want %q", got.PaymentState, models.PaymentIdle)
	}
}
