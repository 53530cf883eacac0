// Package detector provides hand detection interfaces and types for gesture recognition.
package detector

import (
	"math"
	"strings"
)

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point in normalized image coordinates.
// Z may be zero when the tracker does not report depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Handedness identifies which hand a skeleton belongs to.
type Handedness int

const (
	HandednessUnknown Handedness = iota
	HandednessLeft
	HandednessRight
)

// ParseHandedness maps the tracker's handedness label to a Handedness value.
// Unrecognized labels map to HandednessUnknown.
func ParseHandedness(s string) Handedness {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return HandednessLeft
	case "right":
		return HandednessRight
	default:
		return HandednessUnknown
	}
}

// String returns the tracker-facing label for the handedness value.
func (h Handedness) String() string {
	switch h {
	case HandednessLeft:
		return "Left"
	case HandednessRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// HandLandmarks represents the 21 hand landmarks reported per frame.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// palmScaleFloor keeps the reference length positive for degenerate
// skeletons so callers can divide by it safely.
const palmScaleFloor = 1e-6

// PalmScale returns the wrist-to-index-MCP distance, the reference length
// used to normalize distance features against hand size and camera distance.
func (h *HandLandmarks) PalmScale() float64 {
	d := distance3D(h.Points[Wrist], h.Points[IndexMCP])
	if d < palmScaleFloor {
		return palmScaleFloor
	}
	return d
}
