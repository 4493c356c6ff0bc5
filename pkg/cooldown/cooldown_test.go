package cooldown

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a hand-advanced clock for deterministic window math.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSchedulerIdleByDefault(t *testing.T) {
	s := NewScheduler()

	if s.Active() {
		t.Fatal("expected new scheduler to be idle")
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("expected 0 remaining, got %d", got)
	}
	if status := s.Status(); status.OnCooldown {
		t.Fatalf("expected idle status, got %+v", status)
	}
}

func TestRemainingSecondsRoundsUp(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler(WithClock(clock.Now))

	s.Start(clock.Now())
	defer s.Cancel()

	if got := s.RemainingSeconds(); got != 300 {
		t.Fatalf("expected 300s at start, got %d", got)
	}

	clock.Advance(1500 * time.Millisecond)
	if got := s.RemainingSeconds(); got != 299 {
		t.Fatalf("expected 298.5s to round up to 299, got %d", got)
	}

	clock.Advance(298*time.Second + 400*time.Millisecond)
	if got := s.RemainingSeconds(); got != 1 {
		t.Fatalf("expected 0.1s to round up to 1, got %d", got)
	}

	clock.Advance(time.Second)
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("expected 0 after the window, got %d", got)
	}
}

func TestStatusCarriesAvailableAt(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler(WithClock(clock.Now), WithWindow(90*time.Second))

	start := clock.Now()
	s.Start(start)
	defer s.Cancel()

	status := s.Status()
	if !status.OnCooldown {
		t.Fatalf("expected on cooldown, got %+v", status)
	}
	if status.Remaining != 90 {
		t.Fatalf("expected 90s remaining, got %d", status.Remaining)
	}
	want := start.Add(90 * time.Second)
	if status.AvailableAt == nil || !status.AvailableAt.Equal(want) {
		t.Fatalf("expected available at %v, got %v", want, status.AvailableAt)
	}
}

func TestCancelStopsWithoutExpire(t *testing.T) {
	expired := make(chan struct{}, 1)
	s := NewScheduler(
		WithWindow(50*time.Millisecond),
		OnExpire(func() { expired <- struct{}{} }),
	)

	s.Start(time.Now())
	s.Cancel()
	s.Cancel() // safe when already idle

	select {
	case <-expired:
		t.Fatal("OnExpire fired after Cancel")
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestExpireFiresOnce(t *testing.T) {
	expired := make(chan struct{}, 4)
	s := NewScheduler(
		WithWindow(100*time.Millisecond),
		OnExpire(func() { expired <- struct{}{} }),
	)

	s.Start(time.Now())

	select {
	case <-expired:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}

	select {
	case <-expired:
		t.Fatal("OnExpire fired more than once")
	case <-time.After(1500 * time.Millisecond):
	}

	if s.Active() {
		t.Fatal("expected idle after expiry")
	}
}

func TestStartReplacesRunningWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewScheduler(WithClock(clock.Now), WithWindow(60*time.Second))
	defer s.Cancel()

	s.Start(clock.Now())
	clock.Advance(30 * time.Second)
	s.Start(clock.Now())

	if got := s.RemainingSeconds(); got != 60 {
		t.Fatalf("expected restart to reset the window to 60s, got %d", got)
	}
}
