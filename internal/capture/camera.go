// Package capture acquires video frames and gates the pipeline on motion.
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Errors returned by Camera implementations.
var (
	ErrCameraNotOpen = errors.New("camera is not open")
	ErrReadFailed    = errors.New("failed to read frame from camera")
	ErrEmptyFrame    = errors.New("captured frame is empty")
)

// Options configures a capture device. Zero fields fall back to the
// defaults applied by withDefaults.
type Options struct {
	DeviceID int
	Width    int
	Height   int
	FPS      int
}

// Capture defaults: a modest resolution and idle-rate FPS keep the camera
// cheap until motion promotes it.
const (
	defaultWidth  = 640
	defaultHeight = 480
	defaultFPS    = 5
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultWidth
	}
	if o.Height <= 0 {
		o.Height = defaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = defaultFPS
	}
	return o
}

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// device captures frames from a physical camera via GoCV.
type device struct {
	opts    Options
	mu      sync.Mutex
	capture *gocv.VideoCapture
	open    bool
	fps     int
}

// NewCamera creates a Camera for the device described by opts.
func NewCamera(opts Options) Camera {
	opts = opts.withDefaults()
	return &device{
		opts: opts,
		fps:  opts.FPS,
	}
}

// Open acquires the device and applies the configured resolution and frame
// rate. Opening an already-open camera is a no-op.
func (d *device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.open {
		return nil
	}

	vc, err := gocv.OpenVideoCapture(d.opts.DeviceID)
	if err != nil {
		return err
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(d.opts.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(d.opts.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(d.fps))

	d.capture = vc
	d.open = true
	return nil
}

// Close releases the device. Closing a camera that was never opened is a
// no-op.
func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open || d.capture == nil {
		d.open = false
		return nil
	}

	err := d.capture.Close()
	d.capture = nil
	d.open = false
	return err
}

// ReadFrame grabs one frame. The caller owns the returned Mat and must
// Close it.
func (d *device) ReadFrame() (*gocv.Mat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open || d.capture == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := d.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrReadFailed
	}
	if mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}
	return &mat, nil
}

// SetFPS changes the capture frame rate. Non-positive values are ignored so
// a bad config can never stall the device.
func (d *device) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.fps = fps
	if d.capture != nil {
		d.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current capture frame rate.
func (d *device) FPS() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

// IsOpen reports whether the device is currently acquired.
func (d *device) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}
