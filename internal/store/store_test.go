package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestEventInsertAndRecent(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	base := float64(time.Now().Unix())
	for i := 0; i < 3; i++ {
		e := &Event{
			Time:         base + float64(i),
			Gesture:      "THUMBS_UP",
			Command:      "GOOD",
			Score:        0.9,
			ResponseTime: 1.5,
		}
		if err := events.Insert(e); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
		if e.ID == 0 {
			t.Error("Insert() did not set ID")
		}
		if e.SessionID != "default" {
			t.Errorf("SessionID = %s, want default", e.SessionID)
		}
	}

	got, err := events.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d events, want 2", len(got))
	}
	// Newest first.
	if got[0].Time <= got[1].Time {
		t.Errorf("Recent() order: %f before %f, want newest first", got[0].Time, got[1].Time)
	}
}

func TestEventCount(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	n, err := events.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}

	events.Insert(&Event{Time: 1, Gesture: "FIST", Command: "CLOSED_HAND", Score: 0.8})

	n, err = events.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestEventDeleteBefore(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	for i := 0; i < 5; i++ {
		events.Insert(&Event{Time: float64(i), Gesture: "V", Command: "VICTORY", Score: 0.7})
	}

	deleted, err := events.DeleteBefore(3)
	if err != nil {
		t.Fatalf("DeleteBefore() error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("DeleteBefore() = %d, want 3", deleted)
	}

	n, _ := events.Count()
	if n != 2 {
		t.Errorf("Count() after delete = %d, want 2", n)
	}
}

func TestEventScoresByGesture(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	events.Insert(&Event{Time: 1, Gesture: "FIST", Command: "CLOSED_HAND", Score: 0.8})
	events.Insert(&Event{Time: 2, Gesture: "FIST", Command: "CLOSED_HAND", Score: 0.9})
	events.Insert(&Event{Time: 3, Gesture: "PALM", Command: "OPEN_HAND", Score: 0.7})

	scores, err := events.ScoresByGesture()
	if err != nil {
		t.Fatalf("ScoresByGesture() error: %v", err)
	}
	if len(scores["FIST"]) != 2 {
		t.Errorf("FIST scores = %d, want 2", len(scores["FIST"]))
	}
	if len(scores["PALM"]) != 1 {
		t.Errorf("PALM scores = %d, want 1", len(scores["PALM"]))
	}
}

func TestSettingsGetSet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := settings.Set("key", "value1"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := settings.Set("key", "value2"); err != nil {
		t.Fatalf("Set() overwrite error: %v", err)
	}

	got, err := settings.Get("key")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "value2" {
		t.Errorf("Get() = %s, want value2", got)
	}
}

func TestSettingsJSONRoundTrip(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	in := map[string]string{"THUMBS_UP": "GOOD", "SIX": "SIX_GESTURE"}
	if err := settings.SetJSON(SettingMapping, in); err != nil {
		t.Fatalf("SetJSON() error: %v", err)
	}

	out := map[string]string{}
	if err := settings.GetJSON(SettingMapping, &out); err != nil {
		t.Fatalf("GetJSON() error: %v", err)
	}
	if out["THUMBS_UP"] != "GOOD" || out["SIX"] != "SIX_GESTURE" {
		t.Errorf("GetJSON() = %v, want %v", out, in)
	}
}

func TestCleanupEvents(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	events.Insert(&Event{Time: now - 3*3600, Gesture: "FIST", Command: "CLOSED_HAND", Score: 0.9})
	events.Insert(&Event{Time: now, Gesture: "PALM", Command: "OPEN_HAND", Score: 0.8})

	removed, err := s.CleanupEvents(time.Hour)
	if err != nil {
		t.Fatalf("CleanupEvents() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupEvents() removed %d, want 1", removed)
	}

	n, err := events.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestStartCleanupRemovesOldEvents(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	events.Insert(&Event{Time: now - 2*3600, Gesture: "V", Command: "VICTORY", Score: 0.7})

	stop := s.StartCleanup(10*time.Millisecond, time.Hour)
	defer stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := events.Count()
		if err != nil {
			t.Fatalf("Count() error: %v", err)
		}
		if n == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("Count() = %d after cleanup deadline, want 0", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartCleanupDisabled(t *testing.T) {
	s := newTestStore(t)
	events := s.Events()

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	events.Insert(&Event{Time: now - 2*3600, Gesture: "V", Command: "VICTORY", Score: 0.7})

	stop := s.StartCleanup(10*time.Millisecond, 0)
	time.Sleep(50 * time.Millisecond)
	stop()

	n, err := events.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d, want 1 with cleanup disabled", n)
	}
}
