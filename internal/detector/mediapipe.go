package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// idleShutdown is how long the Python subprocess may sit unused before it
// is reaped. It restarts transparently on the next Detect call.
const idleShutdown = 30 * time.Second

// lengthPrefixSize is the byte width of the frame-length header on the
// subprocess wire protocol.
const lengthPrefixSize = 4

// MediaPipeDetector implements Detector over a Python MediaPipe subprocess.
// Frames go to the subprocess as length-prefixed JPEGs on stdin; detections
// come back as one JSON line per frame on stdout.
type MediaPipeDetector struct {
	config    Config
	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeDetector creates a MediaPipe detector. It fails fast when the
// service script cannot be found; the subprocess itself starts lazily on
// the first Detect call.
func NewMediaPipeDetector(config Config) (*MediaPipeDetector, error) {
	if findServiceScript() == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}
	return &MediaPipeDetector{config: config}, nil
}

// Detect runs hand detection on one frame. Hands with an incomplete
// skeleton are dropped rather than padded, so every returned HandLandmarks
// carries a full 21-point skeleton.
func (d *MediaPipeDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureStarted(); err != nil {
		return nil, err
	}

	if err := d.sendFrame(frame); err != nil {
		return nil, err
	}

	hands, err := d.readHands()
	if err != nil {
		return nil, err
	}

	d.lastUsed = time.Now()
	d.resetIdleTimer()

	return hands, nil
}

// sendFrame writes one JPEG-encoded frame to the subprocess, preceded by a
// big-endian length prefix.
func (d *MediaPipeDetector) sendFrame(frame *gocv.Mat) error {
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	msg := make([]byte, lengthPrefixSize+len(data))
	binary.BigEndian.PutUint32(msg, uint32(len(data)))
	copy(msg[lengthPrefixSize:], data)

	if _, err := d.stdin.Write(msg); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readHands reads one JSON detection line and filters out partial
// skeletons.
func (d *MediaPipeDetector) readHands() ([]HandLandmarks, error) {
	line, err := d.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Hands []wireHand `json:"hands"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	hands := make([]HandLandmarks, 0, len(response.Hands))
	for _, h := range response.Hands {
		if len(h.Points) != NumLandmarks {
			continue
		}
		hands = append(hands, h.toHandLandmarks())
	}
	return hands, nil
}

// Close shuts down the Python subprocess.
func (d *MediaPipeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown()
}

func (d *MediaPipeDetector) ensureStarted() error {
	if d.started {
		return nil
	}

	scriptPath := findServiceScript()
	if scriptPath == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	d.cmd = exec.Command(pythonPath, scriptPath)

	stdin, err := d.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Service diagnostics pass straight through.
	d.cmd.Stderr = os.Stderr

	if err := d.cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	d.stdin = stdin
	d.stdout = bufio.NewReader(stdout)
	d.started = true
	d.lastUsed = time.Now()

	return nil
}

func (d *MediaPipeDetector) shutdown() error {
	if !d.started {
		return nil
	}

	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
	if d.stdin != nil {
		d.stdin.Close()
	}

	err := d.cmd.Wait()
	d.started = false
	d.cmd = nil
	d.stdin = nil
	d.stdout = nil

	return err
}

func (d *MediaPipeDetector) resetIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
	}
	d.idleTimer = time.AfterFunc(idleShutdown, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.shutdown()
	})
}

// firstExisting returns the first candidate path that exists, made
// absolute when possible.
func firstExisting(candidates []string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

func executableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(execPath)
}

// findServiceScript locates mediapipe_service.py near the working
// directory, the executable, or the user's data directory.
func findServiceScript() string {
	return firstExisting([]string{
		"scripts/mediapipe_service.py",
		"../scripts/mediapipe_service.py",
		filepath.Join(executableDir(), "scripts/mediapipe_service.py"),
		filepath.Join(os.Getenv("HOME"), ".mudra/scripts/mediapipe_service.py"),
	})
}

// findVenvPython locates a virtualenv interpreter so the service runs with
// its pinned MediaPipe version. Empty means fall back to the system
// python3.
func findVenvPython() string {
	return firstExisting([]string{
		"venv/bin/python",
		"../venv/bin/python",
		"../../venv/bin/python",
		filepath.Join(executableDir(), "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".mudra/venv/bin/python"),
	})
}

// wireHand mirrors the subprocess's per-hand JSON payload.
type wireHand struct {
	Points     []wirePoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (h wireHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: ParseHandedness(h.Handedness).String(),
		Score:      h.Score,
	}
	for i := 0; i < NumLandmarks && i < len(h.Points); i++ {
		lm.Points[i] = Point3D(h.Points[i])
	}
	return lm
}
