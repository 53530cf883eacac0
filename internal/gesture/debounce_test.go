package gesture

import (
	"testing"
	"time"
)

func TestDebouncerSuppressesUnknown(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDebouncer()
	now := time.Now()

	if d.Admit(LabelUnknown, now, &cfg) {
		t.Error("Admit(UNKNOWN) = true, want false")
	}

	cfg.EmitUnknown = true
	if !d.Admit(LabelUnknown, now, &cfg) {
		t.Error("Admit(UNKNOWN) with EmitUnknown = false, want true")
	}
}

func TestDebouncerSuppressesRepeats(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDebouncer()
	now := time.Now()

	if !d.Admit(LabelFist, now, &cfg) {
		t.Fatal("first Admit = false, want true")
	}

	// The identical label is suppressed even after the interval has passed.
	later := now.Add(10 * time.Second)
	if d.Admit(LabelFist, later, &cfg) {
		t.Error("repeat Admit = true, want false")
	}
}

func TestDebouncerMinInterval(t *testing.T) {
	cfg := DefaultConfig() // 500ms interval
	d := NewDebouncer()
	now := time.Now()

	if !d.Admit(LabelFist, now, &cfg) {
		t.Fatal("first Admit = false, want true")
	}

	// A different label inside the interval is still suppressed.
	if d.Admit(LabelPalm, now.Add(100*time.Millisecond), &cfg) {
		t.Error("Admit inside interval = true, want false")
	}

	// After the interval it goes through.
	if !d.Admit(LabelPalm, now.Add(600*time.Millisecond), &cfg) {
		t.Error("Admit after interval = false, want true")
	}
}

func TestDebouncerSuppressedAttemptKeepsState(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDebouncer()
	now := time.Now()

	d.Admit(LabelFist, now, &cfg)

	// The suppressed attempt must not refresh the timestamp: PALM at +400ms
	// is rejected, but PALM at +600ms (measured from the emission, not the
	// rejection) is admitted.
	d.Admit(LabelPalm, now.Add(400*time.Millisecond), &cfg)
	if !d.Admit(LabelPalm, now.Add(600*time.Millisecond), &cfg) {
		t.Error("Admit after suppressed attempt = false, want true")
	}
}

func TestDebouncerReset(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDebouncer()
	now := time.Now()

	d.Admit(LabelSix, now, &cfg)
	d.Reset()

	// After a reset the same label is immediately admissible again.
	if !d.Admit(LabelSix, now.Add(time.Millisecond), &cfg) {
		t.Error("Admit after Reset = false, want true")
	}
	if got := d.LastEmitted(); got != LabelSix {
		t.Errorf("LastEmitted() = %s, want %s", got, LabelSix)
	}
}

func TestDebouncerLastEmitted(t *testing.T) {
	d := NewDebouncer()
	if got := d.LastEmitted(); got != LabelUnknown {
		t.Errorf("LastEmitted() = %s, want %s", got, LabelUnknown)
	}
}
