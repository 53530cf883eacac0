package server

import (
	"fmt"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/capture"
)

// streamFallbackFPS paces the stream when the camera reports no usable
// frame rate.
const streamFallbackFPS = 15

// StreamHandler serves the camera feed as an MJPEG stream. The stream is
// paced by the camera's current frame rate, so it slows down in idle mode
// and speeds up when motion promotes the capture rate.
type StreamHandler struct {
	camera capture.Camera
}

// NewStreamHandler creates a StreamHandler over the given camera.
func NewStreamHandler(camera capture.Camera) *StreamHandler {
	return &StreamHandler{camera: camera}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if flusher != nil {
			flusher.Flush()
		}

		time.Sleep(h.frameInterval())
	}
}

// frameInterval derives the inter-frame delay from the camera's current
// frame rate.
func (h *StreamHandler) frameInterval() time.Duration {
	fps := h.camera.FPS()
	if fps <= 0 {
		fps = streamFallbackFPS
	}
	return time.Second / time.Duration(fps)
}
