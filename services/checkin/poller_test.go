package checkin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"yadori/models"
	"yadori/services/reservations"

	"go.uber.org/zap"
)

// scriptedChecker replays a fixed sequence of status responses; the last
// entry repeats once the script runs out.
type scriptedChecker struct {
	mu     sync.Mutex
	script []statusReply
	calls  int
}

type statusReply struct {
	paid bool
	err  error
}

func (c *scriptedChecker) ReservationStatus(_ context.Context, _ int) (models.ReservationStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.calls
	if idx >= len(c.script) {
		idx = len(c.script) - 1
	}
	c.calls++
	reply := c.script[idx]
	return models.ReservationStatus{IsPaid: reply.paid}, reply.err
}

func (c *scriptedChecker) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func newPoller(checker StatusChecker, maxAttempts int) *Poller {
	return &Poller{
		Checker:     checker,
		Interval:    time.Millisecond,
		MaxAttempts: maxAttempts,
		Logger:      zap.NewNop(),
	}
}

func TestPollerConfirmsOnPaidStatus(t *testing.T) {
	checker := &scriptedChecker{script: []statusReply{
		{paid: false},
		{paid: false},
		{paid: true},
	}}

	outcome := newPoller(checker, 20).Run(context.Background(), 7)
	if outcome != PollConfirmed {
		t.Fatalf("outcome = %v, want PollConfirmed", outcome)
	}
	if got := checker.callCount(); got != 3 {
		t.Errorf("checker called %d times, want 3", got)
	}
}

func TestPollerDelaysAfterBudgetExhausted(t *testing.T) {
	checker := &scriptedChecker{script: []statusReply{{paid: false}}}

	outcome := newPoller(checker, 5).Run(context.Background(), 7)
	if outcome != PollDelayed {
		t.Fatalf("outcome = %v, want PollDelayed", outcome)
	}
	if got := checker.callCount(); got != 5 {
		t.Errorf("checker called %d times, want 5", got)
	}
}

func TestPollerTransientErrorsConsumeBudget(t *testing.T) {
	checker := &scriptedChecker{script: []statusReply{
		{err: errors.New("connection refused")},
	}}

	outcome := newPoller(checker, 3).Run(context.Background(), 7)
	if outcome != PollDelayed {
		t.Fatalf("outcome = %v, want PollDelayed", outcome)
	}
	if got := checker.callCount(); got != 3 {
		t.Errorf("checker called %d times, want 3", got)
	}
}

func TestPollerAbortsWhenStatusEndpointUnavailable(t *testing.T) {
	checker := &scriptedChecker{script: []statusReply{
		{err: reservations.ErrStatusUnavailable},
	}}

	outcome := newPoller(checker, 20).Run(context.Background(), 7)
	if outcome != PollMisconfigured {
		t.Fatalf("outcome = %v, want PollMisconfigured", outcome)
	}
	if got := checker.callCount(); got != 1 {
		t.Errorf("checker called %d times, want 1", got)
	}
}

func TestPollerStopsOnCancel(t *testing.T) {
	checker := &scriptedChecker{script: []statusReply{{paid: false}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := newPoller(checker, 20).Run(ctx, 7)
	if outcome != PollCancelled {
		t.Fatalf("outcome = %v, want PollCancelled", outcome)
	}
}
