package dispatch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func sinkHandler(t *testing.T, hits *atomic.Int64) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		var ev Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			t.Errorf("failed to decode event: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"accepted": true,
			"reason":   "ok",
			"command":  "GOOD",
		})
	}
}

func TestClientSend(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(sinkHandler(t, &hits))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	resp, err := c.Send(Event{Gesture: "THUMBS_UP", Score: 0.92, Timestamp: 1000})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if !resp.Accepted {
		t.Error("Accepted = false, want true")
	}
	if resp.Command != "GOOD" {
		t.Errorf("Command = %s, want GOOD", resp.Command)
	}
	if !c.Connected() {
		t.Error("Connected() = false, want true")
	}
}

func TestClientRetriesOnServerError(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"accepted": true, "reason": "ok", "command": "GOOD"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	resp, err := c.Send(Event{Gesture: "FIST", Score: 0.8})
	if err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if !resp.Accepted {
		t.Error("Accepted = false, want true")
	}
	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3", got)
	}
}

func TestClientGivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	if _, err := c.Send(Event{Gesture: "FIST"}); err == nil {
		t.Fatal("Send() error = nil, want error")
	}
	if got := hits.Load(); got != maxAttempts {
		t.Errorf("server hits = %d, want %d", got, maxAttempts)
	}
	if c.Connected() {
		t.Error("Connected() = true, want false")
	}
}

func TestClientSubmitMinInterval(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(sinkHandler(t, &hits))
	defer srv.Close()

	c := NewClient(srv.URL, time.Hour)

	c.Submit(Event{Gesture: "FIST", Score: 0.8})
	c.Submit(Event{Gesture: "PALM", Score: 0.8}) // dropped by the guard

	deadline := time.Now().Add(2 * time.Second)
	for hits.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	// Give a dropped second submit a moment to (incorrectly) arrive.
	time.Sleep(100 * time.Millisecond)
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}
