package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/dispatch"
)

// runPipeline is the main detection loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode at the configured idle FPS
// 2. On motion detected, switch to active mode at the configured active FPS
// 3. Run hand detection; only the first detected hand is processed
// 4. Classify, smooth and gate via the session
// 5. Publish every result; dispatch admitted ones to the command sink
// 6. After 2s no motion, switch back to idle mode
func (a *App) runPipeline() {
	// Track whether we're in active mode
	activeMode := false

	// Track the last motion detection time
	lastMotionTime := time.Now()

	// Frame interval based on current FPS
	frameInterval := time.Second / time.Duration(a.idleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				// Switch to active mode if not already
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(a.activeFPS)
					frameInterval = time.Second / time.Duration(a.activeFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				// Check if we should switch back to idle mode
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(a.idleFPS)
					frameInterval = time.Second / time.Duration(a.idleFPS)
					ticker.Reset(frameInterval)
					a.session.NoObservation()
					log.Println("Switched to idle mode")
				}
			}

			// Skip further processing if not in active mode or no detector
			if !activeMode || a.detector == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := a.detector.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				a.session.NoObservation()
				continue
			}

			// Step 3: Classify the first detected hand only
			hand := &hands[0]
			now := time.Now()
			result := a.session.Observe(hand.Points[:], detector.ParseHandedness(hand.Handedness), now)

			// Step 4: Publish the result to feed subscribers
			a.publish(result)

			// Step 5: Dispatch admitted gestures to the command sink
			if result.Admitted && a.config.Dispatch != nil {
				log.Printf("Gesture admitted: %s (raw: %s)", result.Stable, result.Raw)
				a.config.Dispatch.Submit(dispatch.Event{
					Gesture:   string(result.Stable),
					Score:     hand.Score,
					Timestamp: float64(now.UnixNano()) / float64(time.Second),
				})
			}
		}
	}
}
