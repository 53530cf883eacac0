// Package dispatch submits admitted gesture events to the command sink over
// HTTP. Submission is fire-and-forget: the capture pipeline never blocks on
// the network.
package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	maxAttempts  = 3
	retryBackoff = 200 * time.Millisecond
)

// Event is the wire format for one gesture submission.
type Event struct {
	Gesture   string  `json:"gesture"`
	Score     float64 `json:"score"`
	Timestamp float64 `json:"ts"` // epoch seconds
}

// SinkResponse is the sink's decision for a submitted event.
type SinkResponse struct {
	Accepted bool            `json:"accepted"`
	Reason   string          `json:"reason"`
	Command  string          `json:"command"`
	State    json.RawMessage `json:"state"`
}

// Client posts gesture events to a command sink endpoint.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	minInterval time.Duration
	connected   atomic.Bool

	mu       sync.Mutex
	lastSend time.Time
}

// NewClient creates a Client for the given sink endpoint. minInterval guards
// against flooding the sink; zero disables the guard.
func NewClient(endpoint string, minInterval time.Duration) *Client {
	return &Client{
		endpoint:    endpoint,
		minInterval: minInterval,
		httpClient: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

// Connected reports whether the last submission reached the sink.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// Submit sends an event asynchronously. Events arriving faster than the
// minimum interval are dropped rather than queued; stale gestures are worse
// than missing ones.
func (c *Client) Submit(ev Event) {
	c.mu.Lock()
	now := time.Now()
	if c.minInterval > 0 && !c.lastSend.IsZero() && now.Sub(c.lastSend) < c.minInterval {
		c.mu.Unlock()
		return
	}
	c.lastSend = now
	c.mu.Unlock()

	go func() {
		if _, err := c.send(ev); err != nil {
			log.Printf("Dispatch: %v", err)
		}
	}()
}

// Send submits an event synchronously and returns the sink's decision.
func (c *Client) Send(ev Event) (*SinkResponse, error) {
	return c.send(ev)
}

func (c *Client) send(ev Event) (*SinkResponse, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(retryBackoff)
		}

		resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("sink returned status %d", resp.StatusCode)
			continue
		}

		var decision SinkResponse
		err = json.NewDecoder(resp.Body).Decode(&decision)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to decode sink response: %w", err)
			continue
		}

		c.connected.Store(true)
		return &decision, nil
	}

	c.connected.Store(false)
	return nil, fmt.Errorf("submit failed after %d attempts: %w", maxAttempts, lastErr)
}
