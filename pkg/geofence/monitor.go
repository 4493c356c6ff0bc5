package geofence

import (
	"sync"
)

// Monitor turns a stream of device location updates into gate state for the
// redemption panel. The platform location watch feeds Update/ReportError;
// interested parties hold a Subscription and must cancel it (or Stop the
// monitor) when the panel is torn down so nothing keeps listening.
type Monitor struct {
	mu        sync.Mutex
	target    *Coordinate
	threshold float64
	status    Status
	subs      map[int]chan Status
	nextSubID int
	stopped   bool
}

type Option func(*Monitor)

// WithThreshold overrides the default redemption radius.
func WithThreshold(meters float64) Option {
	return func(m *Monitor) {
		m.threshold = meters
	}
}

// NewMonitor creates a monitor for the given target. A nil target disables
// gating: the monitor reports within-range unconditionally.
func NewMonitor(target *Coordinate, opts ...Option) *Monitor {
	m := &Monitor{
		target:    target,
		threshold: DefaultThresholdMeters,
		subs:      make(map[int]chan Status),
	}
	for _, opt := range opts {
		opt(m)
	}

	// Until the first fix arrives a gated monitor reports out of range.
	if target == nil {
		m.status = Status{WithinRange: true}
	} else {
		m.status = Status{WithinRange: false, Reason: ReasonLocationUnavailable}
	}

	return m
}

// Update processes one location fix.
func (m *Monitor) Update(device Coordinate) {
	m.publish(Classify(m.target, m.threshold, device))
}

// ReportError records a transient location failure. The gate closes with a
// "location unavailable" reason and the monitor keeps accepting updates.
func (m *Monitor) ReportError(err error) {
	if m.target == nil {
		// No gating; location failures are irrelevant.
		return
	}
	m.publish(Status{WithinRange: false, Reason: ReasonLocationUnavailable})
}

// Status returns the latest gate state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Subscription is a caller-owned handle on the monitor's status stream.
type Subscription struct {
	C      <-chan Status
	id     int
	m      *Monitor
	cancel sync.Once
}

// Cancel releases the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel.Do(func() {
		s.m.mu.Lock()
		defer s.m.mu.Unlock()
		if ch, ok := s.m.subs[s.id]; ok {
			delete(s.m.subs, s.id)
			close(ch)
		}
	})
}

// Subscribe registers for status updates. The current status is delivered
// immediately so subscribers never start blind.
func (m *Monitor) Subscribe() *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Status, 8)
	id := m.nextSubID
	m.nextSubID++

	if m.stopped {
		close(ch)
		return &Subscription{C: ch, id: id, m: m}
	}

	m.subs[id] = ch
	ch <- m.status
	return &Subscription{C: ch, id: id, m: m}
}

// Stop tears the monitor down and closes all subscriptions. Updates arriving
// after Stop are dropped.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
}

func (m *Monitor) publish(status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.status = status
	for _, ch := range m.subs {
		select {
		case ch <- status:
		default:
			// Slow subscriber; drop the update rather than block the
			// location callback.
		}
	}
}
