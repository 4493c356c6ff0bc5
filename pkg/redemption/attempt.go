package redemption

import (
	"context"
	"sync"
	"time"

	"github.com/slocalhq/slocal-core/pkg/cooldown"
	"github.com/slocalhq/slocal-core/pkg/geofence"
	"github.com/slocalhq/slocal-core/pkg/swipe"
)

// Outcome is the attempt-level state rendered by the redemption panel.
type Outcome string

const (
	OutcomePending    Outcome = "PENDING"
	OutcomeProcessing Outcome = "PROCESSING"
	OutcomeSuccess    Outcome = "SUCCESS"
	OutcomeFailed     Outcome = "FAILED"
	OutcomeCooldown   Outcome = "COOLDOWN"
)

// Attempt is one ephemeral swipe-to-redeem interaction. It owns a geofence
// subscription and releases it on Close; an issuance response arriving after
// Close is discarded. Success is terminal: later location updates cannot
// reset it.
type Attempt struct {
	studentID string
	dealID    string
	multiUse  bool
	issuer    Issuer

	detector  *swipe.Detector
	monitor   *geofence.Monitor
	sub       *geofence.Subscription
	scheduler *cooldown.Scheduler

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	outcome  Outcome
	result   *IssueResult
	lastErr  *Error
	inFlight bool
	closed   bool
}

// Config carries the explicit inputs of an attempt. Identity is passed in
// rather than read from ambient session state.
type Config struct {
	StudentID string
	DealID    string
	MultiUse  bool
	Issuer    Issuer
	// Target is the deal's redemption coordinate; nil disables gating.
	Target *geofence.Coordinate
	// MonitorOpts lets tests shrink the threshold.
	MonitorOpts []geofence.Option
	// CooldownOpts lets tests inject a clock or a shorter window.
	CooldownOpts []cooldown.Option
}

// NewAttempt wires up a fresh attempt. The caller feeds location fixes to
// Monitor() and pointer events to Detector(), and must Close the attempt
// when the panel goes away.
func NewAttempt(cfg Config) *Attempt {
	ctx, cancel := context.WithCancel(context.Background())

	a := &Attempt{
		studentID: cfg.StudentID,
		dealID:    cfg.DealID,
		multiUse:  cfg.MultiUse,
		issuer:    cfg.Issuer,
		monitor:   geofence.NewMonitor(cfg.Target, cfg.MonitorOpts...),
		ctx:       ctx,
		cancel:    cancel,
		outcome:   OutcomePending,
	}

	a.detector = swipe.NewDetector(a.onGestureComplete)

	opts := append([]cooldown.Option{cooldown.OnExpire(a.onCooldownExpired)}, cfg.CooldownOpts...)
	a.scheduler = cooldown.NewScheduler(opts...)

	a.sub = a.monitor.Subscribe()
	go a.watchGate()

	return a
}

// Monitor exposes the geofence monitor so the platform location watch can
// feed it.
func (a *Attempt) Monitor() *geofence.Monitor {
	return a.monitor
}

// Detector exposes the gesture detector for pointer events.
func (a *Attempt) Detector() *swipe.Detector {
	return a.detector
}

// Cooldown exposes the client-side cooldown scheduler.
func (a *Attempt) Cooldown() *cooldown.Scheduler {
	return a.scheduler
}

// Outcome returns the current attempt state.
func (a *Attempt) Outcome() Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outcome
}

// Result returns the issued ticket after a success, nil otherwise.
func (a *Attempt) Result() *IssueResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// LastError returns the most recent typed failure, nil otherwise.
func (a *Attempt) LastError() *Error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Close tears the attempt down: the geofence subscription is released and
// any in-flight issuance response is discarded.
func (a *Attempt) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.cancel()
	a.sub.Cancel()
	a.monitor.Stop()
	a.scheduler.Cancel()
}

// watchGate mirrors geofence state onto the gesture gate. The gate never
// reopens after a terminal outcome, and stays shut during a cooldown
// regardless of location.
func (a *Attempt) watchGate() {
	for status := range a.sub.C {
		a.mu.Lock()
		outcome := a.outcome
		a.mu.Unlock()

		switch outcome {
		case OutcomeSuccess, OutcomeFailed:
			// Terminal; a late location update must not reset the panel.
			continue
		case OutcomeCooldown, OutcomeProcessing:
			continue
		}

		a.detector.SetGate(status.WithinRange, status.Reason)
	}
}

// onGestureComplete runs when the drag hits 100%. The in-flight flag makes
// the issuance call at-most-once per completed gesture even when the
// completion signal is delivered twice.
func (a *Attempt) onGestureComplete() {
	a.mu.Lock()
	if a.closed || a.inFlight || a.outcome != OutcomePending {
		a.mu.Unlock()
		return
	}
	a.inFlight = true
	a.outcome = OutcomeProcessing
	a.mu.Unlock()

	a.detector.SetGate(false, "Processing...")

	go a.issue()
}

func (a *Attempt) issue() {
	result, err := a.issuer.Issue(a.ctx, a.studentID, a.dealID)

	a.mu.Lock()
	a.inFlight = false
	if a.closed {
		// Panel already gone; drop the response on the floor.
		a.mu.Unlock()
		return
	}

	if err != nil {
		typed, ok := err.(*Error)
		if !ok {
			typed = &Error{Code: CodeNetworkError, Message: err.Error()}
		}
		a.lastErr = typed

		if typed.Terminal() {
			a.outcome = OutcomeFailed
			a.mu.Unlock()
			a.detector.SetGate(false, typed.Message)
			return
		}

		// Transient (network, premature cooldown retry): reset the swipe
		// and let geofencing re-gate.
		a.outcome = OutcomePending
		a.mu.Unlock()
		a.detector.Reset()
		a.applyGateFromMonitor()
		return
	}

	a.result = result
	a.lastErr = nil

	if a.multiUse {
		a.outcome = OutcomeCooldown
		a.mu.Unlock()
		a.detector.SetGate(false, "Redeemed")
		a.scheduler.Start(result.IssuedAt)
		return
	}

	a.outcome = OutcomeSuccess
	a.mu.Unlock()
	a.detector.SetGate(false, "Redeemed")
}

// onCooldownExpired re-arms the panel once the lockout elapses.
func (a *Attempt) onCooldownExpired() {
	a.mu.Lock()
	if a.closed || a.outcome != OutcomeCooldown {
		a.mu.Unlock()
		return
	}
	a.outcome = OutcomePending
	a.result = nil
	a.mu.Unlock()

	a.detector.Reset()
	a.applyGateFromMonitor()
}

func (a *Attempt) applyGateFromMonitor() {
	status := a.monitor.Status()
	a.detector.SetGate(status.WithinRange, status.Reason)
}

// WaitSettled blocks until the attempt leaves OutcomeProcessing or the
// timeout passes. Test helper for the asynchronous issuance path.
func (a *Attempt) WaitSettled(timeout time.Duration) Outcome {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if out := a.Outcome(); out != OutcomeProcessing {
			return out
		}
		time.Sleep(time.Millisecond)
	}
	return a.Outcome()
}
