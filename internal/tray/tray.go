// Package tray provides the system tray control surface for Mudra.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Menu item titles for the two detection states.
const (
	titleEnabled = "● Detection on"
	titlePaused  = "○ Detection paused"
)

// Tray is the system tray menu: a detection toggle, the last admitted
// gesture, the sink mode, and the usual settings/quit entries.
type Tray struct {
	mu         sync.RWMutex
	onToggle   func(enabled bool)
	onSettings func()
	onQuit     func()
	enabled    bool

	menuToggle  *systray.MenuItem
	menuGesture *systray.MenuItem
	menuMode    *systray.MenuItem
}

// New creates a Tray with detection enabled.
func New() *Tray {
	return &Tray{enabled: true}
}

// OnToggle sets the callback invoked when the detection toggle is clicked.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnSettings sets the callback invoked when the settings entry is clicked.
func (t *Tray) OnSettings(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSettings = fn
}

// OnQuit sets the callback invoked before the tray quits.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray loop. Blocks until the quit entry is clicked.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Gesture Recognition")

	t.menuToggle = systray.AddMenuItem(titleEnabled, "Toggle gesture detection")
	systray.AddSeparator()

	t.menuGesture = systray.AddMenuItem("Last: none", "Last admitted gesture")
	t.menuGesture.Disable()
	t.menuMode = systray.AddMenuItem("Mode: running", "Command sink mode")
	t.menuMode.Disable()
	systray.AddSeparator()

	menuSettings := systray.AddMenuItem("Open Settings...", "Open settings in browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuSettings.ClickedCh:
				t.handleSettings()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle(titleEnabled)
	} else {
		t.menuToggle.SetTitle(titlePaused)
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Callbacks run outside the lock to prevent deadlocks.
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleSettings() {
	t.mu.RLock()
	callback := t.onSettings
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastGesture updates the last-gesture line in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuGesture == nil {
		return
	}
	if name == "" {
		t.menuGesture.SetTitle("Last: none")
	} else {
		t.menuGesture.SetTitle("Last: " + name)
	}
}

// SetMode updates the sink mode line in the menu.
func (t *Tray) SetMode(mode string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuMode != nil {
		t.menuMode.SetTitle("Mode: " + mode)
	}
}

// IsEnabled returns the current detection toggle state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
