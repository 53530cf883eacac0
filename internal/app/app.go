// Package app provides the main application logic for the Mudra gesture recognition system.
package app

import (
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/dispatch"
	"github.com/ayusman/mudra/internal/gesture"
)

// Pipeline timing defaults.
const (
	// DefaultIdleFPS is the frame rate when no motion is detected.
	DefaultIdleFPS = 5
	// DefaultActiveFPS is the frame rate during active detection.
	DefaultActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// subscriberBuffer bounds each result feed channel; slow consumers drop frames.
	subscriberBuffer = 8
)

// Config holds configuration options for the application. Zero-valued FPS
// fields fall back to the pipeline defaults.
type Config struct {
	Settings     *gesture.Settings
	Dispatch     *dispatch.Client
	CameraID     int
	MotionThresh float64
	IdleFPS      int
	ActiveFPS    int
}

// App is the main application that orchestrates the capture, detection and
// classification pipeline and forwards admitted gestures to the command sink.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	session  *gesture.Session

	idleFPS   int
	activeFPS int

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	subMu       sync.Mutex
	subscribers map[chan gesture.Result]struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	settings := config.Settings
	if settings == nil {
		settings = gesture.NewSettings(gesture.DefaultConfig())
	}

	idleFPS := config.IdleFPS
	if idleFPS <= 0 {
		idleFPS = DefaultIdleFPS
	}
	activeFPS := config.ActiveFPS
	if activeFPS < idleFPS {
		activeFPS = DefaultActiveFPS
	}

	a := &App{
		config:      config,
		camera:      capture.NewCamera(capture.Options{DeviceID: config.CameraID, FPS: idleFPS}),
		motion:      capture.NewMotionDetector(motionThreshold),
		session:     gesture.NewSession(settings),
		idleFPS:     idleFPS,
		activeFPS:   activeFPS,
		enabled:     false,
		stopCh:      nil,
		subscribers: make(map[chan gesture.Result]struct{}),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Subscribe registers a result feed consumer. The returned cancel function
// must be called to release the subscription.
func (a *App) Subscribe() (<-chan gesture.Result, func()) {
	ch := make(chan gesture.Result, subscriberBuffer)

	a.subMu.Lock()
	a.subscribers[ch] = struct{}{}
	a.subMu.Unlock()

	cancel := func() {
		a.subMu.Lock()
		if _, ok := a.subscribers[ch]; ok {
			delete(a.subscribers, ch)
			close(ch)
		}
		a.subMu.Unlock()
	}
	return ch, cancel
}

// publish fans a result out to all subscribers. Full channels are skipped so
// the pipeline never blocks on a slow consumer.
func (a *App) publish(res gesture.Result) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	for ch := range a.subscribers {
		select {
		case ch <- res:
		default:
		}
	}
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(a.idleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline()

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// Close the camera
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	a.motion.Close()

	// Close the hand detector if set
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Session returns the gesture pipeline session.
func (a *App) Session() *gesture.Session {
	return a.session
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
