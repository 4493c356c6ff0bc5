// Package cooldown implements the client-side lockout timer shown after a
// multi-use redemption. It is presentational only: the server enforces its
// own window and may still reject a premature repeat attempt.
package cooldown

import (
	"sync"
	"time"
)

// DefaultWindow is the lockout after a successful multi-use redemption.
const DefaultWindow = 5 * time.Minute

// Status mirrors what the redemption panel renders.
type Status struct {
	OnCooldown  bool       `json:"onCooldown"`
	Remaining   int        `json:"remaining"` // whole seconds, rounded up
	AvailableAt *time.Time `json:"availableAt,omitempty"`
}

// Scheduler runs one cooldown window at a time. Ticks arrive once per second
// on the callback; OnExpire fires once when the window elapses.
type Scheduler struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	until    time.Time
	stop     chan struct{}
	onTick   func(remainingSeconds int)
	onExpire func()
}

type Option func(*Scheduler)

// WithWindow overrides the default 5-minute window.
func WithWindow(d time.Duration) Option {
	return func(s *Scheduler) {
		s.window = d
	}
}

// WithClock injects a clock for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// OnTick registers the per-second callback.
func OnTick(fn func(remainingSeconds int)) Option {
	return func(s *Scheduler) {
		s.onTick = fn
	}
}

// OnExpire registers the expiry callback.
func OnExpire(fn func()) Option {
	return func(s *Scheduler) {
		s.onExpire = fn
	}
}

func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a window from the moment of a successful redemption. An
// already-running window is replaced.
func (s *Scheduler) Start(from time.Time) {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
	}
	s.until = from.Add(s.window)
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	go s.run(stop)
}

func (s *Scheduler) run(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := s.RemainingSeconds()

			s.mu.Lock()
			tick := s.onTick
			expire := s.onExpire
			current := s.stop == stop
			s.mu.Unlock()

			if !current {
				return
			}
			if remaining <= 0 {
				s.mu.Lock()
				if s.stop == stop {
					close(s.stop)
					s.stop = nil
				}
				s.mu.Unlock()
				if expire != nil {
					expire()
				}
				return
			}
			if tick != nil {
				tick(remaining)
			}
		}
	}
}

// Active reports whether a window is in progress.
func (s *Scheduler) Active() bool {
	return s.RemainingSeconds() > 0
}

// RemainingSeconds returns whole seconds left, rounded up, or 0 when idle.
func (s *Scheduler) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := s.until.Sub(s.now())
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// Status returns the renderable cooldown state.
func (s *Scheduler) Status() Status {
	remaining := s.RemainingSeconds()
	if remaining == 0 {
		return Status{}
	}

	s.mu.Lock()
	until := s.until
	s.mu.Unlock()

	return Status{OnCooldown: true, Remaining: remaining, AvailableAt: &until}
}

// Cancel stops the ticker without firing OnExpire. Safe when idle.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}
