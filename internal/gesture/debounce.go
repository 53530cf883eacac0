package gesture

import "time"

// Debouncer decides whether a stabilized label becomes an actionable event.
// It suppresses repeats of the last emitted label and emissions inside the
// minimum interval, and optionally suppresses UNKNOWN.
type Debouncer struct {
	lastLabel Label
	lastAt    time.Time
	hasLast   bool
}

// NewDebouncer creates an empty Debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Admit reports whether the stabilized label should be dispatched now, and
// records the emission when it is.
func (d *Debouncer) Admit(label Label, now time.Time, cfg *Config) bool {
	if label == LabelUnknown && !cfg.EmitUnknown {
		return false
	}
	if d.hasLast && label == d.lastLabel {
		return false
	}
	if !d.lastAt.IsZero() && now.Sub(d.lastAt) < cfg.MinEmissionInterval() {
		return false
	}

	d.lastLabel = label
	d.lastAt = now
	d.hasLast = true
	return true
}

// LastEmitted returns the last admitted label, or UNKNOWN if none since the
// last reset.
func (d *Debouncer) LastEmitted() Label {
	if !d.hasLast {
		return LabelUnknown
	}
	return d.lastLabel
}

// Reset forgets the last emission so a re-acquired hand can re-trigger the
// previously emitted label immediately. Invoked on hand loss, together with
// Smoother.Reset.
func (d *Debouncer) Reset() {
	d.lastLabel = ""
	d.lastAt = time.Time{}
	d.hasLast = false
}
