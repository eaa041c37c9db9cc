package checkin

import (
	"context"
	"errors"
	"time"

	"yadori/models"
	"yadori/services/reservations"

	"go.uber.org/zap"
)

// StatusChecker queries the external system of record for a reservation's
// payment state.
type StatusChecker interface {
	ReservationStatus(ctx context.Context, reservationID int) (models.ReservationStatus, error)
}

// PollOutcome is the terminal result of a payment confirmation poll.
type PollOutcome int

const (
	// PollConfirmed: the backend recorded the payment.
	PollConfirmed PollOutcome = iota
	// PollDelayed: the attempt budget ran out without confirmation.
	PollDelayed
	// PollMisconfigured: the status endpoint is permanently unavailable;
	// retrying will not help.
	PollMisconfigured
	// PollCancelled: the owning session tore the poller down.
	PollCancelled
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxAttempts  = 20
)

// Poller reconciles a processor-confirmed payment with the external system
// of record. Processor-side success does not guarantee the backend has
// recorded it yet, so the poller checks the status endpoint immediately and
// then at a fixed interval until confirmation, cancellation, or budget
// exhaustion.
type Poller struct {
	Checker     StatusChecker
	Interval    time.Duration
	MaxAttempts int
	Logger      *zap.Logger
}

// Run blocks until a terminal outcome. Transient errors are ignored but
// still consume the attempt budget, so the loop is bounded even when the
// endpoint never answers. A status-endpoint-unavailable error stops the loop
// at once: it signals misconfiguration, not settlement latency.
func (p *Poller) Run(ctx context.Context, reservationID int) PollOutcome {
	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		status, err := p.Checker.ReservationStatus(ctx, reservationID)
		switch {
		case err == nil && status.IsPaid:
			return PollConfirmed
		case errors.Is(err, reservations.ErrStatusUnavailable):
			p.Logger.Error("reservation status endpoint unavailable, aborting payment verification",
				zap.Int("reservationID", reservationID), zap.Error(err))
			return PollMisconfigured
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return PollCancelled
		case err != nil:
			p.Logger.Warn("payment verification poll failed, continuing",
				zap.Int("reservationID", reservationID),
				zap.Int("attempt", attempt), zap.Error(err))
		}

		if attempt >= maxAttempts {
			return PollDelayed
		}

		select {
		case <-ctx.Done():
			return PollCancelled
		case <-ticker.C:
		}
	}
}
