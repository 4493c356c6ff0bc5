// Package swipe implements the swipe-to-redeem gesture detector: a drag
// across a fixed track that must reach 100% in one continuous motion before
// a redemption is fired.
package swipe

import (
	"sync"
)

// State is the gesture lifecycle. Complete is terminal for the attempt; the
// control is replaced by a result view and a fresh detector (or Reset) is
// needed before another drag.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDragging:
		return "DRAGGING"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// Detector tracks a single continuous drag from 0 to 100. It fires its
// completion callback exactly once per drag that reaches 100; releasing
// below 100 resets to zero with no partial credit.
type Detector struct {
	mu             sync.Mutex
	state          State
	progress       float64
	enabled        bool
	disabledReason string
	onComplete     func()
}

// NewDetector creates a detector in the idle, disabled state. The gate must
// open (SetGate) before a drag can begin.
func NewDetector(onComplete func()) *Detector {
	return &Detector{onComplete: onComplete}
}

// SetGate opens or closes the control. While closed, Begin and Drag are
// ignored and reason is surfaced through Feedback. Closing the gate
// mid-drag cancels the drag; a completed gesture is not undone.
func (d *Detector) SetGate(open bool, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.enabled = open
	d.disabledReason = reason
	if open {
		d.disabledReason = ""
	}

	if !open && d.state == StateDragging {
		d.state = StateIdle
		d.progress = 0
	}
}

// Begin starts a drag on pointer-down. Returns false when the control is
// disabled or the attempt already completed.
func (d *Detector) Begin() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled || d.state != StateIdle {
		return false
	}
	d.state = StateDragging
	d.progress = 0
	return true
}

// Drag reports pointer movement as absolute track progress (0-100). Reaching
// 100 transitions to Complete and fires the callback exactly once; further
// calls are no-ops.
func (d *Detector) Drag(progress float64) {
	d.mu.Lock()

	if d.state != StateDragging || !d.enabled {
		d.mu.Unlock()
		return
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	d.progress = progress

	if progress < 100 {
		d.mu.Unlock()
		return
	}

	d.state = StateComplete
	fire := d.onComplete
	d.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Release handles pointer-up. A drag released below 100 snaps back to zero;
// there is no retry memory.
func (d *Detector) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateDragging {
		return
	}
	d.state = StateIdle
	d.progress = 0
}

// Reset re-arms a completed detector for a new drag, e.g. after a transient
// issuance failure.
func (d *Detector) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = StateIdle
	d.progress = 0
}

// State returns the current gesture state.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Progress returns the current track progress (0-100).
func (d *Detector) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.progress
}

// Enabled reports whether the control is interactive.
func (d *Detector) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Feedback returns the static text shown instead of the drag hint while the
// control is disabled, e.g. "Move 35m closer".
func (d *Detector) Feedback() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabledReason
}
