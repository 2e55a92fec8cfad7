package notify

import (
	"testing"
	"time"
)

func TestEmitAndActive(t *testing.T) {
	bus := New(DefaultTTL)

	if _, ok := bus.Active(); ok {
		t.Fatal("fresh bus must have no active notice")
	}

	emitted := bus.Emit(KindSuccess, "Leave approved")
	if emitted.ID == "" {
		t.Fatal("expected generated id")
	}

	active, ok := bus.Active()
	if !ok {
		t.Fatal("expected an active notice")
	}
	if active.Kind != KindSuccess || active.Message != "Leave approved" {
		t.Fatalf("unexpected notice: %+v", active)
	}
}

func TestEmitReplacesActive(t *testing.T) {
	bus := New(DefaultTTL)

	bus.Emit(KindError, "first")
	bus.Emit(KindInfo, "second")

	active, ok := bus.Active()
	if !ok {
		t.Fatal("expected an active notice")
	}
	if active.Message != "second" || active.Kind != KindInfo {
		t.Fatalf("expected the later notice to win, got %+v", active)
	}
}

func TestActiveExpiresAfterTTL(t *testing.T) {
	current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	bus := New(4 * time.Second)
	bus.now = func() time.Time { return current }

	bus.Emit(KindSuccess, "short lived")

	current = current.Add(3 * time.Second)
	if _, ok := bus.Active(); !ok {
		t.Fatal("notice must survive inside its TTL")
	}

	current = current.Add(time.Second)
	if _, ok := bus.Active(); ok {
		t.Fatal("notice must lapse once the TTL passes")
	}
}

func TestDismissClearsActive(t *testing.T) {
	bus := New(DefaultTTL)

	bus.Emit(KindSuccess, "to dismiss")
	bus.Dismiss()

	if _, ok := bus.Active(); ok {
		t.Fatal("dismissed notice must not remain active")
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus

	bus.Emit(KindError, "ignored")
	if _, ok := bus.Active(); ok {
		t.Fatal("nil bus must report no active notice")
	}
	bus.Dismiss()
}
