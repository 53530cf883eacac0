package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Playback errors.
var (
	ErrNoFrames      = errors.New("no frames loaded")
	ErrPlaybackEnded = errors.New("playback ended")
)

// PlaybackCamera implements Camera over a fixed frame sequence, standing in
// for hardware in tests. With loop set, the sequence repeats forever.
type PlaybackCamera struct {
	mu     sync.Mutex
	frames []*gocv.Mat
	cursor int
	loop   bool
	open   bool
	fps    int
}

// NewPlaybackCamera creates a PlaybackCamera over the given frames.
func NewPlaybackCamera(frames []*gocv.Mat, loop bool) *PlaybackCamera {
	return &PlaybackCamera{
		frames: frames,
		loop:   loop,
		fps:    defaultFPS,
	}
}

func (c *PlaybackCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.cursor = 0
	return nil
}

func (c *PlaybackCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	return nil
}

// ReadFrame returns a clone of the next frame so callers can close it
// without touching the source sequence.
func (c *PlaybackCamera) ReadFrame() (*gocv.Mat, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return nil, ErrNoFrames
	}
	if c.cursor >= len(c.frames) {
		if !c.loop {
			return nil, ErrPlaybackEnded
		}
		c.cursor = 0
	}

	frame := c.frames[c.cursor].Clone()
	c.cursor++
	return &frame, nil
}

func (c *PlaybackCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
}

func (c *PlaybackCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

func (c *PlaybackCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// SetFrames replaces the frame sequence and rewinds playback.
func (c *PlaybackCamera) SetFrames(frames []*gocv.Mat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = frames
	c.cursor = 0
}

// Rewind restarts playback from the first frame.
func (c *PlaybackCamera) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = 0
}
