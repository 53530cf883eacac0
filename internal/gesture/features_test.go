package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func extractPreset(t *testing.T, h detector.HandLandmarks, hand detector.Handedness) Features {
	t.Helper()
	cfg := DefaultConfig()
	return Extract(h.Points[:], hand, &cfg)
}

func TestExtractThumbsUp(t *testing.T) {
	f := extractPreset(t, detector.ThumbsUpLandmarks(), detector.HandednessRight)

	if f.IndexUp || f.MiddleUp || f.RingUp {
		t.Errorf("fingers up = %v/%v/%v, want all false", f.IndexUp, f.MiddleUp, f.RingUp)
	}
	if !f.Pinky.Curled() {
		t.Errorf("Pinky.Total = %f, want < %f", f.Pinky.Total, PinkyCurledTier)
	}
	if f.Thumb.UpScore <= 0.5 {
		t.Errorf("Thumb.UpScore = %f, want > 0.5", f.Thumb.UpScore)
	}
	if !f.Thumb.Straight {
		t.Error("Thumb.Straight = false, want true")
	}
	if f.Thumb.AbductionDeg <= 40 {
		t.Errorf("Thumb.AbductionDeg = %f, want > 40", f.Thumb.AbductionDeg)
	}
}

func TestExtractSix(t *testing.T) {
	f := extractPreset(t, detector.SixLandmarks(), detector.HandednessRight)

	if math.Abs(f.Thumb.SideScore) <= 0.5 {
		t.Errorf("|Thumb.SideScore| = %f, want > 0.5", math.Abs(f.Thumb.SideScore))
	}
	if !f.Pinky.Medium() {
		t.Errorf("Pinky.Total = %f, want > %f", f.Pinky.Total, PinkyMediumTier)
	}
	if f.Thumb.AbductionDeg >= 35 {
		t.Errorf("Thumb.AbductionDeg = %f, want < 35", f.Thumb.AbductionDeg)
	}
}

func TestExtractOpenPalm(t *testing.T) {
	f := extractPreset(t, detector.OpenPalmLandmarks(), detector.HandednessRight)

	if !f.IndexUp || !f.MiddleUp || !f.RingUp {
		t.Errorf("fingers up = %v/%v/%v, want all true", f.IndexUp, f.MiddleUp, f.RingUp)
	}
	if !f.Pinky.Loose() {
		t.Errorf("Pinky.Total = %f, want > %f", f.Pinky.Total, PinkyLooseTier)
	}
	if f.PalmScore < PalmScorePass {
		t.Errorf("PalmScore = %f, want >= %f", f.PalmScore, PalmScorePass)
	}
}

func TestExtractOKPinch(t *testing.T) {
	cfg := DefaultConfig()
	f := extractPreset(t, detector.OKLandmarks(), detector.HandednessRight)

	if f.PinchDistance >= cfg.OKThreshold {
		t.Errorf("PinchDistance = %f, want < %f", f.PinchDistance, cfg.OKThreshold)
	}
	if f.OKSupport < 2 {
		t.Errorf("OKSupport = %d, want >= 2", f.OKSupport)
	}
}

// Left hands mirror the lateral axis; the side score sign convention must be
// shared so SIX reads the same for both hands.
func TestExtractLeftHandMirrorsSideScore(t *testing.T) {
	h := detector.SixLandmarks()

	right := extractPreset(t, h, detector.HandednessRight)
	left := extractPreset(t, h, detector.HandednessLeft)

	if got, want := left.Thumb.SideScore, -right.Thumb.SideScore; math.Abs(got-want) > 1e-9 {
		t.Errorf("left SideScore = %f, want %f", got, want)
	}
	if left.Thumb.UpScore != right.Thumb.UpScore {
		t.Errorf("left UpScore = %f, want %f", left.Thumb.UpScore, right.Thumb.UpScore)
	}
}

func TestExtractDegenerateSkeleton(t *testing.T) {
	// Every landmark at the same point: the epsilon floors must keep all
	// scores finite.
	points := make([]detector.Point3D, detector.NumLandmarks)
	cfg := DefaultConfig()

	f := Extract(points, detector.HandednessRight, &cfg)

	values := []float64{
		f.Thumb.SideScore, f.Thumb.UpScore, f.Thumb.OpenScore, f.Thumb.AbductionDeg,
		f.Pinky.Total, f.PalmScale, f.PinchDistance, f.PalmScore,
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("value %d = %f, want finite", i, v)
		}
	}
}

func TestFingersUp(t *testing.T) {
	f := Features{IndexUp: true, MiddleUp: true, Pinky: PinkyScore{Total: 0.5}}
	if got := f.FingersUp(); got != 3 {
		t.Errorf("FingersUp() = %d, want 3", got)
	}

	f = Features{Pinky: PinkyScore{Total: 0.2}}
	if got := f.FingersUp(); got != 0 {
		t.Errorf("FingersUp() = %d, want 0", got)
	}
}
