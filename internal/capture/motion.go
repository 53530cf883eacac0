package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Frame-differencing parameters. The blur kernel smears sensor noise before
// differencing; pixels whose grayscale delta exceeds diffThreshold count as
// changed.
const (
	blurKernelSize = 21
	diffThreshold  = 25
)

// MotionDetector reports whether consecutive frames differ enough to wake
// the recognition pipeline. The threshold is the percentage of changed
// pixels required to signal motion.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	baseline  gocv.Mat
	primed    bool
}

// NewMotionDetector creates a MotionDetector. A threshold of 1.0 means 1%
// of pixels must change between frames.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		baseline:  gocv.NewMat(),
	}
}

// prepare grayscales and blurs a frame into dst, the form frames are
// compared in.
func prepare(frame *gocv.Mat, dst *gocv.Mat) {
	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	gocv.GaussianBlur(gray, dst, image.Point{X: blurKernelSize, Y: blurKernelSize}, 0, 0, gocv.BorderDefault)
}

// Detect compares a frame against the previous one and returns whether
// motion was seen plus the percentage of pixels that changed. The first
// frame only primes the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	current := gocv.NewMat()
	defer current.Close()
	prepare(frame, &current)

	if !m.primed {
		current.CopyTo(&m.baseline)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(current, m.baseline, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, diffThreshold, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(mask)
	total := mask.Rows() * mask.Cols()
	changePercent := float64(changed) / float64(total) * 100.0

	current.CopyTo(&m.baseline)

	return changePercent > m.threshold, changePercent
}

// Reset discards the baseline so the next frame primes a fresh one.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropBaselineLocked()
}

// Close releases the detector's resources. The detector re-primes itself if
// used again afterwards.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropBaselineLocked()
}

func (m *MotionDetector) dropBaselineLocked() {
	if !m.baseline.Empty() {
		m.baseline.Close()
		m.baseline = gocv.NewMat()
	}
	m.primed = false
}

// Threshold returns the current motion threshold.
func (m *MotionDetector) Threshold() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.threshold
}

// SetThreshold updates the motion threshold. Non-positive values are
// ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}
