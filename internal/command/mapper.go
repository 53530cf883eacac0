// Package command maps stabilized gesture labels to command identifiers and
// tracks the sink-side control state.
package command

import (
	"sync"
	"time"
)

// CommandNone is returned for gestures with no mapping entry.
const CommandNone = "NONE"

// Control commands. A mapping entry may bind a gesture to either of these,
// letting the operator start and stop the sink by hand gesture alone.
const (
	CommandStart = "START"
	CommandStop  = "STOP"
)

// Debounce window bounds, in seconds.
const (
	MinDebounceSec     = 0.1
	MaxDebounceSec     = 2.0
	DefaultDebounceSec = 0.5
)

// Rejection reasons reported in Outcome.Reason.
const (
	ReasonOK        = "ok"
	ReasonStopped   = "stopped"
	ReasonDebounced = "debounced"
)

// DefaultMapping returns the built-in gesture to command table.
func DefaultMapping() map[string]string {
	return map[string]string{
		"THUMBS_UP": "GOOD",
		"SIX":       "SIX_GESTURE",
		"PALM":      "OPEN_HAND",
		"FIST":      "CLOSED_HAND",
		"POINT":     "POINT_FORWARD",
		"V":         "VICTORY",
		"OK":        "OK_SIGN",
		"UNKNOWN":   "NO_GESTURE",
	}
}

// Outcome is the sink's decision for one submitted gesture event.
type Outcome struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Command  string `json:"command"`
	State    State  `json:"state"`
}

// State is a snapshot of the mapper's control state.
type State struct {
	Mode          string    `json:"mode"` // "running" or "stopped"
	LastGesture   string    `json:"last_gesture"`
	LastCommand   string    `json:"last_command"`
	UpdatedAt     time.Time `json:"updated_at"`
	UptimeSec     float64   `json:"uptime_sec"`
	TotalRequests int64     `json:"total_requests"`
}

// Mapper holds the gesture to command table and applies a sink-side debounce
// on top of whatever gating the client already did. The two gates are
// independent: the client gate protects the wire, this one protects the
// command consumer from multiple clients.
type Mapper struct {
	mu          sync.Mutex
	mapping     map[string]string
	debounce    time.Duration
	running     bool
	startedAt   time.Time
	lastGesture string
	lastCommand string
	lastAt      time.Time
	updatedAt   time.Time
	requests    int64
}

// NewMapper creates a running Mapper with the default mapping and debounce.
func NewMapper() *Mapper {
	now := time.Now()
	return &Mapper{
		mapping:   DefaultMapping(),
		debounce:  time.Duration(DefaultDebounceSec * float64(time.Second)),
		running:   true,
		startedAt: now,
		updatedAt: now,
	}
}

// Apply maps one gesture event to a command and decides whether it is
// actionable now.
func (m *Mapper) Apply(gesture string, score float64, now time.Time) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++

	command, ok := m.mapping[gesture]
	if !ok {
		command = CommandNone
	}

	// A START command is the one event the stopped state must let through,
	// or a gesture-stopped sink could never be gesture-restarted.
	if !m.running && command != CommandStart {
		return Outcome{
			Accepted: false,
			Reason:   ReasonStopped,
			Command:  command,
			State:    m.stateLocked(now),
		}
	}

	if gesture == m.lastGesture && !m.lastAt.IsZero() && now.Sub(m.lastAt) < m.debounce {
		return Outcome{
			Accepted: false,
			Reason:   ReasonDebounced,
			Command:  command,
			State:    m.stateLocked(now),
		}
	}

	switch command {
	case CommandStart:
		if !m.running {
			m.running = true
			m.startedAt = now
		}
	case CommandStop:
		m.running = false
	}

	m.lastGesture = gesture
	m.lastCommand = command
	m.lastAt = now
	m.updatedAt = now

	return Outcome{
		Accepted: true,
		Reason:   ReasonOK,
		Command:  command,
		State:    m.stateLocked(now),
	}
}

// Start resumes command acceptance.
func (m *Mapper) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		m.running = true
		m.startedAt = time.Now()
		m.updatedAt = m.startedAt
	}
}

// Stop pauses command acceptance; events are rejected until Start. The
// debounce memory is cleared so the first gesture after a restart is always
// accepted.
func (m *Mapper) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
	m.lastGesture = ""
	m.lastAt = time.Time{}
	m.updatedAt = time.Now()
}

// Snapshot returns the current control state.
func (m *Mapper) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked(time.Now())
}

func (m *Mapper) stateLocked(now time.Time) State {
	mode := "running"
	uptime := 0.0
	if m.running {
		uptime = now.Sub(m.startedAt).Seconds()
	} else {
		mode = "stopped"
	}
	return State{
		Mode:          mode,
		LastGesture:   m.lastGesture,
		LastCommand:   m.lastCommand,
		UpdatedAt:     m.updatedAt,
		UptimeSec:     uptime,
		TotalRequests: m.requests,
	}
}

// Mapping returns a copy of the current gesture to command table.
func (m *Mapper) Mapping() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.mapping))
	for k, v := range m.mapping {
		out[k] = v
	}
	return out
}

// SetMapping replaces entries in the mapping table. Unknown keys are added,
// existing keys overwritten; keys absent from updates are left alone.
func (m *Mapper) SetMapping(updates map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range updates {
		m.mapping[k] = v
	}
	m.updatedAt = time.Now()
}

// Debounce returns the sink-side debounce window.
func (m *Mapper) Debounce() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debounce
}

// SetDebounce sets the sink-side debounce window in seconds, clamped to
// [MinDebounceSec, MaxDebounceSec].
func (m *Mapper) SetDebounce(seconds float64) {
	if seconds < MinDebounceSec {
		seconds = MinDebounceSec
	}
	if seconds > MaxDebounceSec {
		seconds = MaxDebounceSec
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debounce = time.Duration(seconds * float64(time.Second))
}
