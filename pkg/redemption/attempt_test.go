package redemption

import (
	"context"
	"testing"
	"time"

	"github.com/slocalhq/slocal-core/pkg/cooldown"
	"github.com/slocalhq/slocal-core/pkg/geofence"
)

// stubIssuer returns a canned result or error and counts calls. When block is
// set, Issue waits until the channel is closed.
type stubIssuer struct {
	result *IssueResult
	err    error
	block  chan struct{}
	calls  chan struct{}
}

func newStubIssuer(result *IssueResult, err error) *stubIssuer {
	return &stubIssuer{result: result, err: err, calls: make(chan struct{}, 8)}
}

func (s *stubIssuer) Issue(ctx context.Context, studentID, dealID string) (*IssueResult, error) {
	s.calls <- struct{}{}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func waitEnabled(t *testing.T, a *Attempt) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if a.Detector().Enabled() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for the gesture gate to open")
}

func completeSwipe(t *testing.T, a *Attempt) {
	t.Helper()
	if !a.Detector().Begin() {
		t.Fatal("expected Begin to succeed")
	}
	a.Detector().Drag(100)
}

func TestSuccessfulSingleUseRedemption(t *testing.T) {
	issuer := newStubIssuer(&IssueResult{Code: "SL-AB23CD45", IssuedAt: time.Now()}, nil)
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})
	defer a.Close()

	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", out)
	}
	if a.Result() == nil || a.Result().Code != "SL-AB23CD45" {
		t.Fatalf("unexpected result: %+v", a.Result())
	}
	if a.Detector().Enabled() {
		t.Fatal("expected control locked after success")
	}
}

func TestIssueCalledAtMostOncePerGesture(t *testing.T) {
	issuer := newStubIssuer(&IssueResult{Code: "SL-AB23CD45", IssuedAt: time.Now()}, nil)
	issuer.block = make(chan struct{})
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})
	defer a.Close()

	waitEnabled(t, a)

	// Duplicate completion signals must collapse into one issuance call.
	a.onGestureComplete()
	a.onGestureComplete()

	<-issuer.calls
	close(issuer.block)

	if out := a.WaitSettled(2 * time.Second); out != OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", out)
	}
	select {
	case <-issuer.calls:
		t.Fatal("issuer called more than once")
	default:
	}
}

func TestTerminalFailureLocksControl(t *testing.T) {
	issuer := newStubIssuer(nil, &Error{Code: CodeAlreadyRedeemed, Message: "Deal already redeemed"})
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})
	defer a.Close()

	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomeFailed {
		t.Fatalf("expected FAILED, got %s", out)
	}
	if a.LastError() == nil || a.LastError().Code != CodeAlreadyRedeemed {
		t.Fatalf("unexpected error: %+v", a.LastError())
	}
	if a.Detector().Enabled() {
		t.Fatal("expected control locked after terminal failure")
	}
	if a.Detector().Feedback() != "Deal already redeemed" {
		t.Fatalf("unexpected feedback: %q", a.Detector().Feedback())
	}
}

func TestNetworkErrorResetsForRetry(t *testing.T) {
	issuer := newStubIssuer(nil, &Error{Code: CodeNetworkError, Message: "connection refused"})
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})
	defer a.Close()

	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomePending {
		t.Fatalf("expected PENDING after transient failure, got %s", out)
	}
	if a.LastError() == nil || a.LastError().Code != CodeNetworkError {
		t.Fatalf("unexpected error: %+v", a.LastError())
	}

	// The swipe is re-armed for another try.
	waitEnabled(t, a)
	if !a.Detector().Begin() {
		t.Fatal("expected a retry drag to be possible")
	}
}

func TestUntypedErrorTreatedAsNetworkError(t *testing.T) {
	issuer := newStubIssuer(nil, context.DeadlineExceeded)
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})
	defer a.Close()

	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomePending {
		t.Fatalf("expected PENDING, got %s", out)
	}
	if a.LastError() == nil || a.LastError().Code != CodeNetworkError {
		t.Fatalf("expected NETWORK_ERROR, got %+v", a.LastError())
	}
}

func TestSuccessSurvivesLateLocationUpdate(t *testing.T) {
	target := geofence.Coordinate{Latitude: 40.0, Longitude: -74.0}
	issuer := newStubIssuer(&IssueResult{Code: "SL-AB23CD45", IssuedAt: time.Now()}, nil)
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer, Target: &target})
	defer a.Close()

	a.Monitor().Update(target)
	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomeSuccess {
		t.Fatalf("expected SUCCESS, got %s", out)
	}

	// Walking away after redeeming must not reopen or reset the panel.
	a.Monitor().Update(geofence.Coordinate{Latitude: 41.0, Longitude: -74.0})
	time.Sleep(20 * time.Millisecond)

	if a.Outcome() != OutcomeSuccess {
		t.Fatalf("expected SUCCESS to be terminal, got %s", a.Outcome())
	}
	if a.Detector().Enabled() {
		t.Fatal("expected control to stay locked after success")
	}
}

func TestCloseDiscardsInFlightResponse(t *testing.T) {
	issuer := newStubIssuer(&IssueResult{Code: "SL-AB23CD45", IssuedAt: time.Now()}, nil)
	issuer.block = make(chan struct{})
	a := NewAttempt(Config{StudentID: "s1", DealID: "d1", Issuer: issuer})

	waitEnabled(t, a)
	completeSwipe(t, a)
	<-issuer.calls

	a.Close()
	close(issuer.block)
	time.Sleep(20 * time.Millisecond)

	if a.Result() != nil {
		t.Fatalf("expected response discarded after close, got %+v", a.Result())
	}
}

func TestMultiUseEntersCooldown(t *testing.T) {
	now := time.Now()
	issuer := newStubIssuer(&IssueResult{Code: "SL-AB23CD45", IssuedAt: now, MultiUse: true}, nil)
	a := NewAttempt(Config{
		StudentID:    "s1",
		DealID:       "d1",
		MultiUse:     true,
		Issuer:       issuer,
		CooldownOpts: []cooldown.Option{cooldown.WithWindow(time.Minute)},
	})
	defer a.Close()

	waitEnabled(t, a)
	completeSwipe(t, a)

	if out := a.WaitSettled(2 * time.Second); out != OutcomeCooldown {
		t.Fatalf("expected COOLDOWN, got %s", out)
	}
	if !a.Cooldown().Active() {
		t.Fatal("expected cooldown timer running")
	}
	if a.Detector().Enabled() {
		t.Fatal("expected control locked during cooldown")
	}
}
