package gesture

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/detector"
)

// Result is the per-frame outcome of the pipeline, returned explicitly so UI
// and telemetry consumers read it instead of shared mutable state.
type Result struct {
	SessionID string    `json:"session_id"`
	Raw       Label     `json:"raw"`
	Stable    Label     `json:"stable"`
	Features  Features  `json:"features"`
	Valid     bool      `json:"valid"`
	Admitted  bool      `json:"admitted"`
	Timestamp time.Time `json:"timestamp"`
}

// Session runs the full per-hand pipeline: basis, features, classification,
// smoothing and the emission gate. Processing is strictly sequential per
// session — one frame runs to completion before the next is accepted — so no
// internal locking is needed.
type Session struct {
	id       string
	settings *Settings
	smoother *Smoother
	gate     *Debouncer
}

// NewSession creates a Session reading configuration snapshots from settings.
func NewSession(settings *Settings) *Session {
	cfg := settings.Snapshot()
	return &Session{
		id:       uuid.New().String(),
		settings: settings,
		smoother: NewSmoother(cfg.WindowSize),
		gate:     NewDebouncer(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Observe processes one frame's skeleton. A malformed skeleton (length other
// than 21) cannot be classified and contributes a raw UNKNOWN; no error
// escapes the pipeline.
func (s *Session) Observe(points []detector.Point3D, hand detector.Handedness, now time.Time) Result {
	cfg := s.settings.Snapshot()
	s.smoother.SetCapacity(cfg.WindowSize)

	res := Result{
		SessionID: s.id,
		Raw:       LabelUnknown,
		Timestamp: now,
	}

	if len(points) == detector.NumLandmarks {
		res.Valid = true
		res.Features = Extract(points, hand, cfg)
		res.Raw = Classify(res.Features, cfg)
	}

	res.Stable = s.smoother.Push(res.Raw)
	res.Admitted = s.gate.Admit(res.Stable, now, cfg)
	return res
}

// NoObservation handles a frame without a detected hand: the smoothing
// window and the emission gate are reset immediately, so the next observed
// gesture — even one identical to the last emitted — is eligible again.
func (s *Session) NoObservation() {
	s.smoother.Reset()
	s.gate.Reset()
}
