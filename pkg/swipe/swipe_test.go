package swipe

import "testing"

func TestBeginRequiresOpenGate(t *testing.T) {
	d := NewDetector(nil)

	if d.Begin() {
		t.Fatal("expected Begin to fail while the gate is closed")
	}

	d.SetGate(true, "")
	if !d.Begin() {
		t.Fatal("expected Begin to succeed with the gate open")
	}
	if d.State() != StateDragging {
		t.Fatalf("expected DRAGGING, got %s", d.State())
	}
}

func TestReleaseBelowFullResetsToZero(t *testing.T) {
	d := NewDetector(nil)
	d.SetGate(true, "")

	d.Begin()
	d.Drag(99)
	if d.Progress() != 99 {
		t.Fatalf("expected progress 99, got %.0f", d.Progress())
	}

	d.Release()
	if d.State() != StateIdle {
		t.Fatalf("expected IDLE after release, got %s", d.State())
	}
	if d.Progress() != 0 {
		t.Fatalf("expected progress reset to 0, got %.0f", d.Progress())
	}
}

func TestCompleteFiresExactlyOnce(t *testing.T) {
	fired := 0
	d := NewDetector(func() { fired++ })
	d.SetGate(true, "")

	d.Begin()
	d.Drag(60)
	if fired != 0 {
		t.Fatalf("callback fired at %0.f%%", d.Progress())
	}

	d.Drag(100)
	if fired != 1 {
		t.Fatalf("expected exactly one completion, got %d", fired)
	}
	if d.State() != StateComplete {
		t.Fatalf("expected COMPLETE, got %s", d.State())
	}

	// Further input on a completed detector is ignored.
	d.Drag(100)
	d.Release()
	if d.Begin() {
		t.Fatal("expected Begin to fail after completion")
	}
	if fired != 1 {
		t.Fatalf("expected exactly one completion, got %d", fired)
	}
}

func TestDragClampsProgress(t *testing.T) {
	fired := 0
	d := NewDetector(func() { fired++ })
	d.SetGate(true, "")

	d.Begin()
	d.Drag(-10)
	if d.Progress() != 0 {
		t.Fatalf("expected progress clamped to 0, got %.0f", d.Progress())
	}

	d.Drag(150)
	if fired != 1 {
		t.Fatalf("expected overshoot to count as completion, fired=%d", fired)
	}
}

func TestGateCloseCancelsDrag(t *testing.T) {
	d := NewDetector(nil)
	d.SetGate(true, "")

	d.Begin()
	d.Drag(40)
	d.SetGate(false, "Move 35m closer")

	if d.State() != StateIdle {
		t.Fatalf("expected drag cancelled, got %s", d.State())
	}
	if d.Progress() != 0 {
		t.Fatalf("expected progress reset, got %.0f", d.Progress())
	}
	if d.Feedback() != "Move 35m closer" {
		t.Fatalf("unexpected feedback: %q", d.Feedback())
	}

	// Drag events while disabled go nowhere.
	d.Drag(80)
	if d.Progress() != 0 {
		t.Fatalf("expected no progress while disabled, got %.0f", d.Progress())
	}
}

func TestGateOpenClearsFeedback(t *testing.T) {
	d := NewDetector(nil)
	d.SetGate(false, "location unavailable")
	d.SetGate(true, "")

	if d.Feedback() != "" {
		t.Fatalf("expected feedback cleared, got %q", d.Feedback())
	}
}

func TestResetReArmsCompletedDetector(t *testing.T) {
	d := NewDetector(func() {})
	d.SetGate(true, "")

	d.Begin()
	d.Drag(100)
	d.Reset()

	if d.State() != StateIdle {
		t.Fatalf("expected IDLE after reset, got %s", d.State())
	}
	if !d.Begin() {
		t.Fatal("expected Begin to succeed after reset")
	}
}
