package detector

import (
	"math"
	"testing"
)

func TestParseHandedness(t *testing.T) {
	tests := []struct {
		in   string
		want Handedness
	}{
		{"Left", HandednessLeft},
		{"left", HandednessLeft},
		{"Right", HandednessRight},
		{"RIGHT", HandednessRight},
		{"", HandednessUnknown},
		{"both", HandednessUnknown},
	}

	for _, tt := range tests {
		if got := ParseHandedness(tt.in); got != tt.want {
			t.Errorf("ParseHandedness(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPalmScale(t *testing.T) {
	var h HandLandmarks
	h.Points[Wrist] = Point3D{X: 0, Y: 0}
	h.Points[IndexMCP] = Point3D{X: 3, Y: 4}

	if got := h.PalmScale(); math.Abs(got-5) > 1e-9 {
		t.Errorf("PalmScale() = %f, want 5", got)
	}
}

func TestPalmScaleDegenerate(t *testing.T) {
	var h HandLandmarks

	got := h.PalmScale()
	if got <= 0 {
		t.Errorf("PalmScale() = %f, want > 0", got)
	}
}

func TestMockDetectorPresets(t *testing.T) {
	presets := map[string]HandLandmarks{
		"thumbs up": ThumbsUpLandmarks(),
		"six":       SixLandmarks(),
		"open palm": OpenPalmLandmarks(),
		"fist":      FistLandmarks(),
		"point":     PointLandmarks(),
		"v sign":    VLandmarks(),
		"ok sign":   OKLandmarks(),
	}

	for name, h := range presets {
		t.Run(name, func(t *testing.T) {
			if h.Handedness != "Right" {
				t.Errorf("Handedness = %s, want Right", h.Handedness)
			}
			if h.Score <= 0 {
				t.Errorf("Score = %f, want > 0", h.Score)
			}
			// Every joint must be placed; a zero point means the preset
			// builder missed one.
			for i, p := range h.Points {
				if p.X == 0 && p.Y == 0 && p.Z == 0 {
					t.Errorf("landmark %d not placed", i)
				}
			}
		})
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	hands, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if len(hands) != 0 {
		t.Errorf("Detect() returned %d hands, want 0", len(hands))
	}

	m.SetHands([]HandLandmarks{ThumbsUpLandmarks()})
	hands, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if len(hands) != 1 {
		t.Errorf("Detect() returned %d hands, want 1", len(hands))
	}
}
