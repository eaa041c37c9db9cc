package checkin

import (
	"context"
	"sync"
	"time"

	"yadori/models"

	"go.uber.org/zap"
)

// Persister is the explicit save boundary for guest sessions. Implementations
// must tolerate being skipped: the store treats every persistence failure as
// non-fatal.
type Persister interface {
	Save(ctx context.Context, session models.GuestSession) error
	Load(ctx context.Context, sessionID string) (*models.GuestSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store holds live guest sessions. Every mutation is immediately visible to
// subsequent reads within the process; persistence is best-effort and never
// propagates an error to the caller.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]*models.GuestSession
	persister Persister
	logger    *zap.Logger
}

func NewStore(persister Persister, logger *zap.Logger) *Store {
	return &Store{
		sessions:  make(map[string]*models.GuestSession),
		persister: persister,
		logger:    logger,
	}
}

// Get returns a copy of the session, materializing it from the persister or
// from initial defaults when absent. A malformed or unreadable persisted
// record falls back to defaults rather than failing.
func (s *Store) Get(ctx context.Context, sessionID string) models.GuestSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.sessionLocked(ctx, sessionID))
}

// snapshotOf copies the session for use outside the lock. The booking is
// copied too so no caller ever holds a pointer into live store state.
func snapshotOf(sess *models.GuestSession) models.GuestSession {
	snapshot := *sess
	if sess.Booking != nil {
		booking := *sess.Booking
		snapshot.Booking = &booking
	}
	return snapshot
}

// sessionLocked returns the live session pointer, loading or creating it.
// Callers must hold s.mu.
func (s *Store) sessionLocked(ctx context.Context, sessionID string) *models.GuestSession {
	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}
	if s.persister != nil {
		if loaded, err := s.persister.Load(ctx, sessionID); err == nil && loaded != nil {
			loaded.ID = sessionID
			s.sessions[sessionID] = loaded
			return loaded
		} else if err != nil {
			s.logger.Warn("failed to load persisted session, starting fresh",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	sess := models.NewGuestSession(sessionID)
	s.sessions[sessionID] = sess
	return sess
}

func (s *Store) mutate(ctx context.Context, sessionID string, fn func(*models.GuestSession)) models.GuestSession {
	s.mu.Lock()
	sess := s.sessionLocked(ctx, sessionID)
	fn(sess)
	sess.UpdatedAt = time.Now()
	snapshot := snapshotOf(sess)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return snapshot
}

func (s *Store) persist(ctx context.Context, snapshot models.GuestSession) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist guest session",
			zap.String("sessionID", snapshot.ID), zap.Error(err))
	}
}

// SetStep unconditionally overwrites the current step. Ordering is enforced
// by the controller, not here.
func (s *Store) SetStep(ctx context.Context, sessionID string, step models.CheckInStep) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		sess.CurrentStep = step
	})
}

// SetBooking overwrites the selected booking. A paid flag never reverts to
// false within a session.
func (s *Store) SetBooking(ctx context.Context, sessionID string, booking models.Reservation) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		if sess.Booking != nil && sess.Booking.ID == booking.ID && sess.Booking.IsPaid {
			booking.IsPaid = true
		}
		sess.Booking = &booking
	})
}

// MarkBookingPaid flips the paid flag on the selected booking.
func (s *Store) MarkBookingPaid(ctx context.Context, sessionID string) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		if sess.Booking != nil {
			sess.Booking.IsPaid = true
		}
	})
}

// UpdateGuestDetails shallow-merges the non-nil patch fields.
func (s *Store) UpdateGuestDetails(ctx context.Context, sessionID string, patch models.GuestDetailsPatch) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		d := &sess.GuestDetails
		if patch.Name != nil {
			d.Name = *patch.Name
		}
		if patch.Email != nil {
			d.Email = *patch.Email
		}
		if patch.Phone != nil {
			d.Phone = *patch.Phone
		}
		if patch.Address != nil {
			d.Address = *patch.Address
		}
		if patch.Occupation != nil {
			d.Occupation = *patch.Occupation
		}
		if patch.Nationality != nil {
			d.Nationality = *patch.Nationality
		}
		if patch.PassportNumber != nil {
			d.PassportNumber = *patch.PassportNumber
		}
		if patch.PassportImage != nil {
			d.PassportImage = *patch.PassportImage
		}
	})
}

// SetPaymentState records the payment reconciliation state and an optional
// guest-facing error message.
func (s *Store) SetPaymentState(ctx context.Context, sessionID string, state models.PaymentState, message string) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		sess.PaymentState = state
		sess.PaymentError = message
	})
}

// CompleteCheckIn sets the checked-in flag and the complete step as a single
// state transition.
func (s *Store) CompleteCheckIn(ctx context.Context, sessionID string) models.GuestSession {
	return s.mutate(ctx, sessionID, func(sess *models.GuestSession) {
		sess.IsCheckedIn = true
		sess.CurrentStep = models.StepComplete
	})
}

// Reset restores the session to its initial state. Used on checkout.
func (s *Store) Reset(ctx context.Context, sessionID string) models.GuestSession {
	s.mu.Lock()
	fresh := models.NewGuestSession(sessionID)
	s.sessions[sessionID] = fresh
	snapshot := snapshotOf(fresh)
	s.mu.Unlock()

	if s.persister != nil {
		if err := s.persister.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("failed to delete persisted session",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return snapshot
}
