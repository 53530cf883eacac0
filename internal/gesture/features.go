package gesture

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// tipAboveTolerance guards the basis-relative "tip above joint" test so a
// finger curled sideways does not register as straight by angle alone.
const tipAboveTolerance = 0.02

// Pinky evidence tiers. The pinky is the most occlusion-prone digit, so its
// extension is graded rather than boolean: loose evidence counts toward
// palm/OK, medium evidence asserts SIX, and only a strictly curled pinky may
// support THUMBS_UP.
const (
	PinkyLooseTier  = 0.35
	PinkyMediumTier = 0.45
	PinkyCurledTier = 0.30
)

// Pinky blend weights over four independent signals.
const (
	pinkyAngleWeight      = 0.35
	pinkyHeightWeight     = 0.25
	pinkyReachWeight      = 0.25
	pinkySeparationWeight = 0.15
)

// Palm vote weights. No single signal is authoritative; the combined score
// passes at PalmScorePass out of PalmScoreMax.
const (
	palmAllTipsWeight     = 1.0
	palmReachWeight       = 1.0
	palmThumbSpreadWeight = 0.75
	palmSpacingWeight     = 0.75

	PalmScoreMax  = 3.5
	PalmScorePass = 2.5

	palmReachRatio = 1.1
	palmReachMin   = 3
	palmSpacingMin = 0.25
)

// Pinky sub-score ramps, normalized by palm scale.
const (
	pinkyHeightRamp      = 0.8
	pinkyReachFloor      = 1.1
	pinkyReachRamp       = 0.5
	pinkySeparationFloor = 0.15
	pinkySeparationRamp  = 0.45
)

// ThumbFeatures holds the thumb's direction and openness signals.
type ThumbFeatures struct {
	// SideScore is the thumb projection onto the palm's horizontal axis,
	// normalized by palm scale and mirrored for left hands so both hands
	// share one sign convention.
	SideScore float64 `json:"side_score"`

	// UpScore is the thumb projection onto the palm's vertical axis,
	// normalized by palm scale.
	UpScore float64 `json:"up_score"`

	// OpenScore is the normalized thumb-tip to index-MCP distance.
	OpenScore float64 `json:"open_score"`

	// AbductionDeg is the angle between the thumb and the palm's horizontal
	// axis in [0,90]: low means lateral (SIX-like), high means vertical
	// (THUMBS_UP-like).
	AbductionDeg float64 `json:"abduction_deg"`

	// Straight reports whether the thumb passes the IP-joint straightness
	// test.
	Straight bool `json:"straight"`
}

// PinkyScore is the graded pinky-extension evidence.
type PinkyScore struct {
	AngleScore      float64 `json:"angle_score"`
	HeightScore     float64 `json:"height_score"`
	ReachScore      float64 `json:"reach_score"`
	SeparationScore float64 `json:"separation_score"`
	Total           float64 `json:"total"`
}

// Loose reports weak extension evidence, enough for palm/OK counting.
func (p PinkyScore) Loose() bool { return p.Total > PinkyLooseTier }

// Medium reports extension evidence strong enough to assert SIX.
func (p PinkyScore) Medium() bool { return p.Total > PinkyMediumTier }

// Curled reports that the pinky is strictly curled, as THUMBS_UP requires.
func (p PinkyScore) Curled() bool { return p.Total < PinkyCurledTier }

// Features is the per-frame feature vector the classifier consumes. It is
// ephemeral: recomputed each frame, never persisted.
type Features struct {
	IndexUp  bool `json:"index_up"`
	MiddleUp bool `json:"middle_up"`
	RingUp   bool `json:"ring_up"`

	Pinky PinkyScore    `json:"pinky"`
	Thumb ThumbFeatures `json:"thumb"`

	// PalmScale is the wrist-to-index-MCP distance, epsilon-floored.
	PalmScale float64 `json:"palm_scale"`

	// PinchDistance is the normalized thumb-tip to index-tip distance.
	PinchDistance float64 `json:"pinch_distance"`

	// OKSupport counts how many of middle/ring/pinky are extended, the
	// supporting evidence for the OK ring.
	OKSupport int `json:"ok_support"`

	// PalmScore is the combined open-palm vote in [0, PalmScoreMax].
	PalmScore float64 `json:"palm_score"`
}

// FingersUp counts extended non-thumb fingers, with loose pinky evidence
// counting as one.
func (f Features) FingersUp() int {
	n := 0
	if f.IndexUp {
		n++
	}
	if f.MiddleUp {
		n++
	}
	if f.RingUp {
		n++
	}
	if f.Pinky.Loose() {
		n++
	}
	return n
}

// Extract computes the feature vector for a 21-point skeleton. The caller
// guarantees len(points) == detector.NumLandmarks.
func Extract(points []detector.Point3D, hand detector.Handedness, cfg *Config) Features {
	b := NewBasis(points)

	palm := dist(points[detector.Wrist], points[detector.IndexMCP])
	if palm < basisEpsilon {
		palm = basisEpsilon
	}

	f := Features{PalmScale: palm}
	f.IndexUp = fingerUp(points, b, detector.IndexMCP, cfg)
	f.MiddleUp = fingerUp(points, b, detector.MiddleMCP, cfg)
	f.RingUp = fingerUp(points, b, detector.RingMCP, cfg)
	f.Pinky = pinkyScore(points, b, palm)
	f.Thumb = thumbFeatures(points, b, palm, hand, cfg)

	f.PinchDistance = dist(points[detector.ThumbTip], points[detector.IndexTip]) / palm
	if f.MiddleUp {
		f.OKSupport++
	}
	if f.RingUp {
		f.OKSupport++
	}
	if f.Pinky.Loose() {
		f.OKSupport++
	}

	f.PalmScore = palmScore(points, b, palm, f, cfg)
	return f
}

// fingerUp reports whether the finger rooted at mcp is extended: the PIP
// cosine must be below the threshold and the tip must sit above the PIP or
// DIP along the palm's vertical axis.
func fingerUp(points []detector.Point3D, b Basis, mcp int, cfg *Config) bool {
	pip, dip, tip := mcp+1, mcp+2, mcp+3

	if jointCos(points, pip, mcp, tip) >= cfg.AngleCosThreshold {
		return false
	}

	hTip := b.Height(points, tip)
	return hTip > b.Height(points, pip)+tipAboveTolerance ||
		hTip > b.Height(points, dip)+tipAboveTolerance
}

// pinkyScore blends four independent extension signals into one [0,1] score.
func pinkyScore(points []detector.Point3D, b Basis, palm float64) PinkyScore {
	var p PinkyScore

	p.AngleScore = clamp01(-jointCos(points, detector.PinkyPIP, detector.PinkyMCP, detector.PinkyTip))

	rise := b.Height(points, detector.PinkyTip) - b.Height(points, detector.PinkyMCP)
	p.HeightScore = clamp01(rise / (pinkyHeightRamp * palm))

	tipReach := dist(points[detector.PinkyTip], points[detector.Wrist])
	mcpReach := dist(points[detector.PinkyMCP], points[detector.Wrist]) + basisEpsilon
	p.ReachScore = clamp01((tipReach/mcpReach - pinkyReachFloor) / pinkyReachRamp)

	sep := dist(points[detector.PinkyTip], points[detector.RingTip]) / palm
	p.SeparationScore = clamp01((sep - pinkySeparationFloor) / pinkySeparationRamp)

	p.Total = pinkyAngleWeight*p.AngleScore +
		pinkyHeightWeight*p.HeightScore +
		pinkyReachWeight*p.ReachScore +
		pinkySeparationWeight*p.SeparationScore
	return p
}

func thumbFeatures(points []detector.Point3D, b Basis, palm float64, hand detector.Handedness, cfg *Config) ThumbFeatures {
	v := fromTo(points[detector.ThumbMCP], points[detector.ThumbTip])

	t := ThumbFeatures{
		SideScore: v.dot(b.X) / palm,
		UpScore:   v.dot(b.Y) / palm,
		OpenScore: dist(points[detector.ThumbTip], points[detector.IndexMCP]) / palm,
	}
	if hand == detector.HandednessLeft {
		t.SideScore = -t.SideScore
	}

	cosAbduction := math.Abs(v.unit().dot(b.X))
	t.AbductionDeg = math.Acos(clampFloat(cosAbduction, 0, 1)) * 180 / math.Pi

	t.Straight = jointCos(points, detector.ThumbIP, detector.ThumbMCP, detector.ThumbTip) < cfg.AngleCosThreshold
	return t
}

// palmScore combines four advisory open-palm votes.
func palmScore(points []detector.Point3D, b Basis, palm float64, f Features, cfg *Config) float64 {
	score := 0.0

	mcps := [4]int{detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP}

	allAbove := true
	reachCount := 0
	for _, mcp := range mcps {
		pip, tip := mcp+1, mcp+3
		if b.Height(points, tip) <= b.Height(points, pip)+tipAboveTolerance {
			allAbove = false
		}
		tipReach := dist(points[tip], points[detector.Wrist])
		pipReach := dist(points[pip], points[detector.Wrist]) + basisEpsilon
		if tipReach/pipReach > palmReachRatio {
			reachCount++
		}
	}
	if allAbove {
		score += palmAllTipsWeight
	}
	if reachCount >= palmReachMin {
		score += palmReachWeight
	}

	if f.Thumb.OpenScore > cfg.ThumbOpenThreshold {
		score += palmThumbSpreadWeight
	}

	spacing := (dist(points[detector.IndexTip], points[detector.MiddleTip]) +
		dist(points[detector.MiddleTip], points[detector.RingTip]) +
		dist(points[detector.RingTip], points[detector.PinkyTip])) / 3 / palm
	if spacing > palmSpacingMin {
		score += palmSpacingWeight
	}

	return score
}

// jointCos returns the cosine of the angle at joint `at` between the rays
// toward a and b. Straight joints approach -1, folded joints approach +1.
func jointCos(points []detector.Point3D, at, a, b int) float64 {
	u := fromTo(points[at], points[a])
	w := fromTo(points[at], points[b])
	return u.dot(w) / (u.norm()*w.norm() + basisEpsilon)
}

func dist(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
