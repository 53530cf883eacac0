package gesture

import "math"

// Cascade constants. The THUMBS_UP/SIX arbitration is the hardest decision
// the classifier makes: both gestures share "three fingers curled, thumb
// extended" and differ only in thumb direction and pinky state.
const (
	okMinSupport = 2

	strongThumbUpScore = 0.5
	sixLowUpScore      = 0.1
	sixAbductionCapDeg = 35.0

	confidenceMargin = 0.1
	pinkyTieBreak    = 0.5

	relaxedSixPinkyTotal = 0.4
	relaxedThumbUpScore  = 0.2
)

// Classify maps a feature vector to a gesture label. It is a pure function:
// identical features always produce the identical label.
//
// The cascade order is load-bearing — the predicates are not mutually
// exclusive, so OK must be tested before FIST, FIST before PALM, PALM before
// V/POINT, and the THUMBS_UP/SIX arbitration before the relaxed fallbacks.
func Classify(f Features, cfg *Config) Label {
	// OK has the most distinct geometric signature.
	if f.PinchDistance < cfg.OKThreshold && f.OKSupport >= okMinSupport {
		return LabelOK
	}

	if !f.IndexUp && !f.MiddleUp && !f.RingUp && !f.Pinky.Loose() &&
		f.Thumb.OpenScore < cfg.ThumbOpenThreshold {
		return LabelFist
	}

	if f.PalmScore >= PalmScorePass {
		return LabelPalm
	}

	if f.IndexUp && f.MiddleUp && !f.RingUp && !f.Pinky.Loose() {
		return LabelV
	}

	if f.IndexUp && !f.MiddleUp && !f.RingUp && !f.Pinky.Loose() {
		return LabelPoint
	}

	if !f.IndexUp && !f.MiddleUp && !f.RingUp && f.Thumb.Straight {
		if label, ok := disambiguateThumb(f, cfg); ok {
			return label
		}
	}

	// Relaxed matches, applied only when nothing else fired.
	if f.FingersUp() <= 1 && f.Thumb.Straight &&
		f.Thumb.OpenScore > cfg.ThumbOpenThreshold && f.Thumb.UpScore > relaxedThumbUpScore {
		return LabelThumbsUp
	}
	if f.Pinky.Medium() && f.Thumb.Straight && f.FingersUp() <= 2 {
		return LabelSix
	}

	return LabelUnknown
}

// disambiguateThumb arbitrates THUMBS_UP against SIX. Both predicates may
// hold at once; conflicts are resolved by blended confidence scores and, for
// near ties, by pinky evidence. Returns ok=false only when neither predicate
// nor the relaxed fallback produced a label.
func disambiguateThumb(f Features, cfg *Config) (Label, bool) {
	up := f.Thumb.UpScore
	side := math.Abs(f.Thumb.SideScore)
	pinky := f.Pinky.Total

	isThumbsUp := (up > cfg.ThumbUpScoreThreshold && up > side && f.Pinky.Curled()) ||
		(up > strongThumbUpScore && pinky < PinkyLooseTier) ||
		(f.Thumb.AbductionDeg > cfg.AbductionDegreeThreshold && f.Pinky.Curled())

	moreSideThanUp := side > up && side > cfg.ThumbSideScoreThreshold
	isSix := (f.Pinky.Medium() && (moreSideThanUp || up < sixLowUpScore)) ||
		(pinky > pinkyTieBreak && up < cfg.ThumbUpScoreThreshold) ||
		(f.Pinky.Medium() && f.Thumb.AbductionDeg < sixAbductionCapDeg)

	switch {
	case isThumbsUp && isSix:
		thumbsUpConfidence := 0.5*up + 0.5*(1-pinky)
		sixConfidence := 0.5*pinky + 0.3*(1-up) + 0.2*side

		if thumbsUpConfidence-sixConfidence > confidenceMargin {
			return LabelThumbsUp, true
		}
		if sixConfidence-thumbsUpConfidence > confidenceMargin {
			return LabelSix, true
		}
		// Near tie: pinky evidence decides.
		if pinky > pinkyTieBreak {
			return LabelSix, true
		}
		return LabelThumbsUp, true

	case isThumbsUp:
		return LabelThumbsUp, true

	case isSix:
		return LabelSix, true
	}

	// Neither predicate held: relaxed matching before falling through.
	if pinky > relaxedSixPinkyTotal {
		return LabelSix, true
	}
	if up > sixLowUpScore {
		return LabelThumbsUp, true
	}

	return LabelUnknown, false
}
