package gesture

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

func newTestSession() *Session {
	return NewSession(NewSettings(DefaultConfig()))
}

func TestSessionObserveStabilizesAndAdmits(t *testing.T) {
	s := newTestSession()
	h := detector.ThumbsUpLandmarks()
	now := time.Now()

	var res Result
	for i := 0; i < 5; i++ {
		res = s.Observe(h.Points[:], detector.HandednessRight, now.Add(time.Duration(i)*100*time.Millisecond))
	}

	if res.Raw != LabelThumbsUp {
		t.Errorf("Raw = %s, want %s", res.Raw, LabelThumbsUp)
	}
	if res.Stable != LabelThumbsUp {
		t.Errorf("Stable = %s, want %s", res.Stable, LabelThumbsUp)
	}
	if !res.Valid {
		t.Error("Valid = false, want true")
	}
	if res.SessionID != s.ID() {
		t.Errorf("SessionID = %s, want %s", res.SessionID, s.ID())
	}
}

func TestSessionAdmitsOnceThenSuppresses(t *testing.T) {
	s := newTestSession()
	h := detector.FistLandmarks()
	now := time.Now()

	admitted := 0
	for i := 0; i < 10; i++ {
		res := s.Observe(h.Points[:], detector.HandednessRight, now.Add(time.Duration(i)*time.Second))
		if res.Admitted {
			admitted++
		}
	}

	if admitted != 1 {
		t.Errorf("admitted %d times, want 1", admitted)
	}
}

func TestSessionMalformedSkeleton(t *testing.T) {
	s := newTestSession()

	res := s.Observe(make([]detector.Point3D, 7), detector.HandednessRight, time.Now())

	if res.Valid {
		t.Error("Valid = true, want false")
	}
	if res.Raw != LabelUnknown {
		t.Errorf("Raw = %s, want %s", res.Raw, LabelUnknown)
	}
	if res.Admitted {
		t.Error("Admitted = true, want false")
	}
}

// Losing the hand resets both the window and the gate, so the same gesture
// can trigger again on re-acquisition.
func TestSessionHandLossReadmits(t *testing.T) {
	s := newTestSession()
	h := detector.SixLandmarks()
	now := time.Now()

	var first Result
	for i := 0; i < 5; i++ {
		first = s.Observe(h.Points[:], detector.HandednessRight, now.Add(time.Duration(i)*time.Second))
		if first.Admitted {
			break
		}
	}
	if !first.Admitted {
		t.Fatal("gesture never admitted before hand loss")
	}

	s.NoObservation()

	var second Result
	for i := 0; i < 5; i++ {
		second = s.Observe(h.Points[:], detector.HandednessRight, now.Add(time.Duration(10+i)*time.Second))
		if second.Admitted {
			break
		}
	}
	if !second.Admitted {
		t.Error("gesture not re-admitted after hand loss")
	}
}

func TestSessionWindowFollowsConfig(t *testing.T) {
	settings := NewSettings(DefaultConfig())
	s := NewSession(settings)
	h := detector.PointLandmarks()
	now := time.Now()

	for i := 0; i < 5; i++ {
		s.Observe(h.Points[:], detector.HandednessRight, now)
	}

	// Shrink the window at runtime; the next observation applies it.
	cfg := DefaultConfig()
	cfg.WindowSize = 3
	settings.Update(cfg)

	s.Observe(h.Points[:], detector.HandednessRight, now)
	if got := s.smoother.Len(); got > 3 {
		t.Errorf("window length = %d, want <= 3", got)
	}
}
