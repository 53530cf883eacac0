package gesture

import (
	"math"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
)

func TestNewBasisOrthonormal(t *testing.T) {
	h := detector.OpenPalmLandmarks()
	b := NewBasis(h.Points[:])

	axes := []vec3{b.X, b.Y, b.Z}
	for i, axis := range axes {
		if n := axis.norm(); math.Abs(n-1) > 1e-4 {
			t.Errorf("axis %d norm = %f, want 1", i, n)
		}
	}

	if d := b.X.dot(b.Z); math.Abs(d) > 1e-4 {
		t.Errorf("X.Z = %f, want 0", d)
	}
	if d := b.Y.dot(b.Z); math.Abs(d) > 1e-4 {
		t.Errorf("Y.Z = %f, want 0", d)
	}
}

func TestNewBasisDegenerate(t *testing.T) {
	// All landmarks coincident: the epsilon floor must keep the axes finite.
	points := make([]detector.Point3D, detector.NumLandmarks)
	b := NewBasis(points)

	for i, axis := range []vec3{b.X, b.Y, b.Z} {
		for j, c := range []float64{axis.X, axis.Y, axis.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				t.Errorf("axis %d component %d not finite", i, j)
			}
		}
	}
}

func TestHeightOrdersFingertips(t *testing.T) {
	h := detector.OpenPalmLandmarks()
	b := NewBasis(h.Points[:])

	// On an open palm the index tip sits well above the wrist along the
	// palm's vertical axis.
	wrist := b.Height(h.Points[:], detector.Wrist)
	tip := b.Height(h.Points[:], detector.IndexTip)
	if tip <= wrist {
		t.Errorf("index tip height = %f, wrist height = %f, want tip > wrist", tip, wrist)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{1.7, 1},
	}

	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
