package geofence

import (
	"errors"
	"math"
	"testing"
	"time"
)

// latOffset returns a coordinate roughly meters north of base. One degree of
// latitude spans about 111.2km.
func latOffset(base Coordinate, meters float64) Coordinate {
	return Coordinate{
		Latitude:  base.Latitude + meters/111195.0,
		Longitude: base.Longitude,
	}
}

func TestDistanceAlongMeridian(t *testing.T) {
	base := Coordinate{Latitude: 40.0, Longitude: -74.0}
	device := latOffset(base, 50)

	d := Distance(base, device)
	if math.Abs(d-50) > 0.5 {
		t.Fatalf("expected ~50m, got %.3fm", d)
	}
}

func TestClassifyWithinThreshold(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	device := latOffset(target, 10)

	status := Classify(&target, DefaultThresholdMeters, device)
	if !status.WithinRange {
		t.Fatalf("expected within range at ~10m, got %+v", status)
	}
	if status.Reason != "" {
		t.Fatalf("expected no reason while within range, got %q", status.Reason)
	}
}

func TestClassifyThresholdIsInclusive(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	device := latOffset(target, 10)

	// A device exactly on the boundary counts as within range.
	d := Distance(target, device)
	status := Classify(&target, d, device)
	if !status.WithinRange {
		t.Fatalf("expected device on the boundary to be within range, got %+v", status)
	}
}

func TestClassifyOutOfRange(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	// latOffset undershoots by a fraction of a millimeter per meter; aim just
	// past 50 m so the floored remainder stays at 35.
	device := latOffset(target, 50.01)

	status := Classify(&target, DefaultThresholdMeters, device)
	if status.WithinRange {
		t.Fatalf("expected out of range at ~50m, got %+v", status)
	}
	if status.RemainingMeters != 35 {
		t.Fatalf("expected 35m remaining, got %d", status.RemainingMeters)
	}
	if status.Reason != "Move 35m closer" {
		t.Fatalf("unexpected reason: %q", status.Reason)
	}
}

func TestClassifyNilTargetDisablesGating(t *testing.T) {
	device := Coordinate{Latitude: -89.0, Longitude: 170.0}

	status := Classify(nil, DefaultThresholdMeters, device)
	if !status.WithinRange {
		t.Fatalf("expected within range with no target, got %+v", status)
	}
}

func TestMonitorInitialStatusGated(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	m := NewMonitor(&target)
	defer m.Stop()

	status := m.Status()
	if status.WithinRange {
		t.Fatal("expected out of range before the first fix")
	}
	if status.Reason != ReasonLocationUnavailable {
		t.Fatalf("unexpected reason: %q", status.Reason)
	}
}

func TestMonitorInitialStatusUngated(t *testing.T) {
	m := NewMonitor(nil)
	defer m.Stop()

	if !m.Status().WithinRange {
		t.Fatal("expected within range with no target")
	}
}

func TestMonitorUpdateReachesSubscriber(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	m := NewMonitor(&target)
	defer m.Stop()

	sub := m.Subscribe()
	defer sub.Cancel()

	// First delivery is the current (gated) status.
	first := <-sub.C
	if first.WithinRange {
		t.Fatalf("expected initial status out of range, got %+v", first)
	}

	m.Update(latOffset(target, 5))

	select {
	case status := <-sub.C:
		if !status.WithinRange {
			t.Fatalf("expected within range after close fix, got %+v", status)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for status update")
	}
}

func TestMonitorReportError(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	m := NewMonitor(&target)
	defer m.Stop()

	m.Update(latOffset(target, 5))
	if !m.Status().WithinRange {
		t.Fatal("expected within range after close fix")
	}

	m.ReportError(errors.New("gps timeout"))

	status := m.Status()
	if status.WithinRange {
		t.Fatal("expected gate closed after location error")
	}
	if status.Reason != ReasonLocationUnavailable {
		t.Fatalf("unexpected reason: %q", status.Reason)
	}
}

func TestMonitorReportErrorIgnoredWithoutTarget(t *testing.T) {
	m := NewMonitor(nil)
	defer m.Stop()

	m.ReportError(errors.New("gps timeout"))
	if !m.Status().WithinRange {
		t.Fatal("location errors must not gate a deal without a coordinate")
	}
}

func TestSubscriptionCancelClosesChannel(t *testing.T) {
	m := NewMonitor(nil)
	defer m.Stop()

	sub := m.Subscribe()
	<-sub.C
	sub.Cancel()
	sub.Cancel() // idempotent

	if _, ok := <-sub.C; ok {
		t.Fatal("expected channel closed after cancel")
	}
}

func TestMonitorStopClosesSubscriptions(t *testing.T) {
	target := Coordinate{Latitude: 40.0, Longitude: -74.0}
	m := NewMonitor(&target)

	sub := m.Subscribe()
	<-sub.C
	m.Stop()

	if _, ok := <-sub.C; ok {
		t.Fatal("expected channel closed after stop")
	}

	// Updates after stop are dropped, not panics.
	m.Update(latOffset(target, 5))
}
