package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LabelsHandler pushes live per-frame pipeline results over WebSocket. Each
// client gets its own feed subscription so a slow client cannot stall the
// pipeline or other clients.
type LabelsHandler struct {
	feed ResultFeed
}

// NewLabelsHandler creates a LabelsHandler over the given feed.
func NewLabelsHandler(feed ResultFeed) *LabelsHandler {
	return &LabelsHandler{feed: feed}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *LabelsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	results, cancel := h.feed.Subscribe()
	defer cancel()

	// Drain client messages so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case res, ok := <-results:
			if !ok {
				return
			}
			if err := conn.WriteJSON(res); err != nil {
				return
			}
		}
	}
}
