package store

import (
	"log"
	"time"
)

// Retention defaults. Cleanup runs hourly and keeps a month of events.
const (
	DefaultRetention = 30 * 24 * time.Hour
	CleanupInterval  = time.Hour
)

// CleanupEvents deletes events older than maxAge and returns how many rows
// were removed.
func (s *Store) CleanupEvents(maxAge time.Duration) (int64, error) {
	cutoff := float64(time.Now().Add(-maxAge).UnixNano()) / float64(time.Second)
	return s.Events().DeleteBefore(cutoff)
}

// StartCleanup launches a goroutine that runs CleanupEvents every interval.
// The returned stop function terminates the loop. A maxAge <= 0 disables
// cleanup entirely and the returned stop function is a no-op.
func (s *Store) StartCleanup(interval, maxAge time.Duration) func() {
	if maxAge <= 0 {
		return func() {}
	}

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				n, err := s.CleanupEvents(maxAge)
				if err != nil {
					log.Printf("Event cleanup failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("Event cleanup removed %d old events", n)
				}
			}
		}
	}()

	return func() { close(stop) }
}
