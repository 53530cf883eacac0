package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Preset skeletons below model a right hand seen palm-on by the camera,
// wrist near the bottom of the frame and fingers pointing up (image Y grows
// downward). They exercise every gesture label the recognizer knows.

// newPreset returns a skeleton with the wrist, thumb CMC and the four finger
// MCP joints placed; callers fill in the remaining joints per finger.
func newPreset() HandLandmarks {
	h := HandLandmarks{Handedness: "Right", Score: 0.95}
	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}
	h.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.74}
	h.Points[IndexMCP] = Point3D{X: 0.58, Y: 0.62}
	h.Points[MiddleMCP] = Point3D{X: 0.53, Y: 0.60}
	h.Points[RingMCP] = Point3D{X: 0.47, Y: 0.61}
	h.Points[PinkyMCP] = Point3D{X: 0.41, Y: 0.64}
	return h
}

// setJoints fills the PIP/DIP/TIP joints following the given MCP index.
func setJoints(h *HandLandmarks, mcp int, pip, dip, tip Point3D) {
	h.Points[mcp+1] = pip
	h.Points[mcp+2] = dip
	h.Points[mcp+3] = tip
}

func extendIndex(h *HandLandmarks) {
	setJoints(h, IndexMCP, Point3D{X: 0.60, Y: 0.50}, Point3D{X: 0.61, Y: 0.42}, Point3D{X: 0.62, Y: 0.34})
}

func curlIndex(h *HandLandmarks) {
	setJoints(h, IndexMCP, Point3D{X: 0.59, Y: 0.55}, Point3D{X: 0.58, Y: 0.60}, Point3D{X: 0.55, Y: 0.67})
}

func extendMiddle(h *HandLandmarks) {
	setJoints(h, MiddleMCP, Point3D{X: 0.54, Y: 0.47}, Point3D{X: 0.545, Y: 0.38}, Point3D{X: 0.545, Y: 0.30})
}

func curlMiddle(h *HandLandmarks) {
	setJoints(h, MiddleMCP, Point3D{X: 0.535, Y: 0.53}, Point3D{X: 0.53, Y: 0.58}, Point3D{X: 0.52, Y: 0.64})
}

func extendRing(h *HandLandmarks) {
	setJoints(h, RingMCP, Point3D{X: 0.455, Y: 0.49}, Point3D{X: 0.445, Y: 0.41}, Point3D{X: 0.435, Y: 0.35})
}

func curlRing(h *HandLandmarks) {
	setJoints(h, RingMCP, Point3D{X: 0.465, Y: 0.54}, Point3D{X: 0.465, Y: 0.59}, Point3D{X: 0.46, Y: 0.66})
}

func extendPinky(h *HandLandmarks) {
	setJoints(h, PinkyMCP, Point3D{X: 0.40, Y: 0.54}, Point3D{X: 0.39, Y: 0.47}, Point3D{X: 0.385, Y: 0.40})
}

func curlPinky(h *HandLandmarks) {
	setJoints(h, PinkyMCP, Point3D{X: 0.405, Y: 0.58}, Point3D{X: 0.40, Y: 0.62}, Point3D{X: 0.395, Y: 0.66})
}

// thumbUp points the thumb along the palm's vertical axis.
func thumbUp(h *HandLandmarks) {
	setJoints(h, ThumbCMC, Point3D{X: 0.62, Y: 0.60}, Point3D{X: 0.63, Y: 0.46}, Point3D{X: 0.64, Y: 0.38})
}

// thumbSide lays the thumb along the palm's horizontal axis.
func thumbSide(h *HandLandmarks) {
	setJoints(h, ThumbCMC, Point3D{X: 0.60, Y: 0.60}, Point3D{X: 0.69, Y: 0.59}, Point3D{X: 0.78, Y: 0.58})
}

// thumbCurled tucks the thumb against the palm.
func thumbCurled(h *HandLandmarks) {
	setJoints(h, ThumbCMC, Point3D{X: 0.59, Y: 0.64}, Point3D{X: 0.61, Y: 0.60}, Point3D{X: 0.59, Y: 0.63})
}

// thumbSpread opens the thumb away from the palm without pointing it up.
func thumbSpread(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.58, Y: 0.72}
	setJoints(h, ThumbCMC, Point3D{X: 0.64, Y: 0.64}, Point3D{X: 0.69, Y: 0.57}, Point3D{X: 0.73, Y: 0.50})
}

// thumbPinch brings the thumb tip to the index tip.
func thumbPinch(h *HandLandmarks) {
	setJoints(h, ThumbCMC, Point3D{X: 0.62, Y: 0.62}, Point3D{X: 0.62, Y: 0.56}, Point3D{X: 0.61, Y: 0.51})
}

// ThumbsUpLandmarks returns a skeleton with the thumb extended upward and all
// four fingers curled.
func ThumbsUpLandmarks() HandLandmarks {
	h := newPreset()
	thumbUp(&h)
	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// SixLandmarks returns a skeleton with the thumb extended sideways and the
// pinky extended, index/middle/ring curled.
func SixLandmarks() HandLandmarks {
	h := newPreset()
	thumbSide(&h)
	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	extendPinky(&h)
	return h
}

// OpenPalmLandmarks returns a skeleton with all fingers extended and the
// thumb spread away from the palm.
func OpenPalmLandmarks() HandLandmarks {
	h := newPreset()
	thumbSpread(&h)
	extendIndex(&h)
	extendMiddle(&h)
	extendRing(&h)
	extendPinky(&h)
	return h
}

// FistLandmarks returns a skeleton with every digit curled.
func FistLandmarks() HandLandmarks {
	h := newPreset()
	thumbCurled(&h)
	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// PointLandmarks returns a skeleton with only the index finger extended.
func PointLandmarks() HandLandmarks {
	h := newPreset()
	thumbCurled(&h)
	extendIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// VLandmarks returns a skeleton with index and middle extended, ring and
// pinky curled.
func VLandmarks() HandLandmarks {
	h := newPreset()
	thumbCurled(&h)
	extendIndex(&h)
	extendMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// OKLandmarks returns a skeleton with the thumb and index pinched into a ring
// and the remaining fingers extended.
func OKLandmarks() HandLandmarks {
	h := newPreset()
	thumbPinch(&h)
	setJoints(&h, IndexMCP, Point3D{X: 0.60, Y: 0.54}, Point3D{X: 0.60, Y: 0.51}, Point3D{X: 0.60, Y: 0.50})
	extendMiddle(&h)
	extendRing(&h)
	extendPinky(&h)
	return h
}
