package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// basisEpsilon is added to every normalization denominator so degenerate
// skeletons (coincident landmarks) produce finite axes instead of NaN.
const basisEpsilon = 1e-6

// vec3 is a small 3-component vector for landmark geometry.
type vec3 struct {
	X, Y, Z float64
}

func fromTo(a, b detector.Point3D) vec3 {
	return vec3{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
}

func (v vec3) dot(w vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v vec3) cross(w vec3) vec3 {
	return vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v vec3) norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v vec3) unit() vec3 {
	n := v.norm() + basisEpsilon
	return vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Basis is an orthonormal palm coordinate frame, recomputed every frame so
// downstream features are invariant to camera roll.
//
//	X: across the palm, index MCP toward pinky MCP
//	Y: along the palm, wrist toward middle MCP
//	Z: palm normal, X cross Y
type Basis struct {
	X, Y, Z vec3
}

// NewBasis builds the palm frame from a 21-point skeleton. It always
// succeeds; degenerate geometry yields epsilon-guarded (still finite) axes.
func NewBasis(points []detector.Point3D) Basis {
	x := fromTo(points[detector.IndexMCP], points[detector.PinkyMCP]).unit()
	y := fromTo(points[detector.Wrist], points[detector.MiddleMCP]).unit()
	z := x.cross(y).unit()
	return Basis{X: x, Y: y, Z: z}
}

// Height projects a point onto the palm's vertical axis relative to the
// wrist. Larger values are farther toward the fingers.
func (b Basis) Height(points []detector.Point3D, i int) float64 {
	return fromTo(points[detector.Wrist], points[i]).dot(b.Y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
