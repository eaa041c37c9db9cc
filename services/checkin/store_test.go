package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"

	"yadori/models"

	"go.uber.org/zap"
)

// memoryPersister is an in-memory Persister for tests. It can be told to
// fail saves to exercise the best-effort boundary.
type memoryPersister struct {
	mu       sync.Mutex
	sessions map[string]models.GuestSession
	failSave bool
	saves    int
}

func newMemoryPersister() *memoryPersister {
	return &memoryPersister{sessions: make(map[string]models.GuestSession)}
}

func (p *memoryPersister) Save(_ context.Context, session models.GuestSession) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves++
	if p.failSave {
		return errors.New("save failed")
	}
	p.sessions[session.ID] = session
	return nil
}

func (p *memoryPersister) Load(_ context.Context, sessionID string) (*models.GuestSession, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sess, ok := p.sessions[sessionID]; ok {
		copied := sess
		return &copied, nil
	}
	return nil, nil
}

func (p *memoryPersister) Delete(_ context.Context, sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, sessionID)
	return nil
}

func testReservation(id int) models.Reservation {
	return models.Reservation{
		ID:        id,
		GuestName: "Tanaka Yuki",
		CheckIn:   "2026-09-01",
		CheckOut:  "2026-09-03",
		NumAdult:  2,
	}
}

func TestGetReturnsInitialDefaults(t *testing.T) {
	store := NewStore(newMemoryPersister(), zap.NewNop())

	sess := store.Get(context.Background(), "s1")
	if sess.CurrentStep != models.StepIdentify {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepIdentify)
	}
	if sess.IsCheckedIn {
		t.Error("new session should not be checked in")
	}
	if sess.Booking != nil {
		t.Error("new session should have no booking")
	}
	if sess.GuestDetails.Nationality != "Japan" {
		t.Errorf("Nationality = %q, want Japan", sess.GuestDetails.Nationality)
	}
	if sess.PaymentState != models.PaymentIdle {
		t.Errorf("PaymentState = %q, want %q", sess.PaymentState, models.PaymentIdle)
	}
}

func TestGetLoadsPersistedSession(t *testing.T) {
	ctx := context.Background()
	persister := newMemoryPersister()

	first := NewStore(persister, zap.NewNop())
	first.SetBooking(ctx, "s1", testReservation(7))
	first.SetStep(ctx, "s1", models.StepRegister)

	second := NewStore(persister, zap.NewNop())
	sess := second.Get(ctx, "s1")
	if sess.CurrentStep != models.StepRegister {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepRegister)
	}
	if sess.Booking == nil || sess.Booking.ID != 7 {
		t.Errorf("Booking = %+v, want ID 7", sess.Booking)
	}
}

func TestSetBookingKeepsPaidFlagForSameBooking(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryPersister(), zap.NewNop())

	store.SetBooking(ctx, "s1", testReservation(7))
	store.MarkBookingPaid(ctx, "s1")

	// Re-selecting the same booking, e.g. after a page reload, must not
	// revert the paid flag.
	sess := store.SetBooking(ctx, "s1", testReservation(7))
	if !sess.Booking.IsPaid {
		t.Error("paid flag reverted after re-selecting the same booking")
	}

	// A different booking starts unpaid.
	sess = store.SetBooking(ctx, "s1", testReservation(8))
	if sess.Booking.IsPaid {
		t.Error("paid flag carried over to a different booking")
	}
}

func TestUpdateGuestDetailsMergesOnlySetFields(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryPersister(), zap.NewNop())

	name := "Sato Ken"
	email := "ken@example.com"
	store.UpdateGuestDetails(ctx, "s1", models.GuestDetailsPatch{Name: &name, Email: &email})

	phone := "+81-90-0000-0000"
	sess := store.UpdateGuestDetails(ctx, "s1", models.GuestDetailsPatch{Phone: &phone})

	d := sess.GuestDetails
	if d.Name != name || d.Email != email || d.Phone != phone {
		t.Errorf("details = %+v, earlier fields were not preserved", d)
	}
	if d.Nationality != "Japan" {
		t.Errorf("Nationality = %q, default was overwritten", d.Nationality)
	}
}

func TestCompleteCheckInSetsFlagAndStepTogether(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryPersister(), zap.NewNop())

	sess := store.CompleteCheckIn(ctx, "s1")
	if !sess.IsCheckedIn {
		t.Error("IsCheckedIn = false after CompleteCheckIn")
	}
	if sess.CurrentStep != models.StepComplete {
		t.Errorf("CurrentStep = %q, want %q", sess.CurrentStep, models.StepComplete)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	ctx := context.Background()
	persister := newMemoryPersister()
	store := NewStore(persister, zap.NewNop())

	store.SetBooking(ctx, "s1", testReservation(7))
	store.CompleteCheckIn(ctx, "s1")

	sess := store.Reset(ctx, "s1")
	if sess.IsCheckedIn || sess.Booking != nil || sess.CurrentStep != models.StepIdentify {
		t.Errorf("session after reset = %+v, want initial state", sess)
	}
	if loaded, _ := persister.Load(ctx, "s1"); loaded != nil {
		t.Error("persisted record survived reset")
	}
}

func TestSnapshotBookingDetachedFromLiveSession(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryPersister(), zap.NewNop())

	before := store.SetBooking(ctx, "s1", testReservation(7))
	store.MarkBookingPaid(ctx, "s1")

	if before.Booking.IsPaid {
		t.Error("earlier snapshot observed a later mutation through a shared booking")
	}
	if got := store.Get(ctx, "s1"); !got.Booking.IsPaid {
		t.Error("live session lost the paid flag")
	}
}

func TestConcurrentSnapshotReadsDuringPaidFlip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryPersister(), zap.NewNop())
	store.SetBooking(ctx, "s1", testReservation(7))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sess := store.Get(ctx, "s1")
				_ = sess.Booking.IsPaid
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			store.MarkBookingPaid(ctx, "s1")
		}
	}()
	wg.Wait()
}

func TestPersistFailureDoesNotBlockMutation(t *testing.T) {
	ctx := context.Background()
	persister := newMemoryPersister()
	persister.failSave = true
	store := NewStore(persister, zap.NewNop())

	sess := store.SetStep(ctx, "s1", models.StepVerify)
	if sess.CurrentStep != models.StepVerify {
		t.Errorf("CurrentStep = %q, mutation was lost on persist failure", sess.CurrentStep)
	}
	if got := store.Get(ctx, "s1"); got.CurrentStep != models.StepVerify {
		t.Errorf("Get after failed persist = %q, want %q", got.CurrentStep, models.StepVerify)
	}
}
