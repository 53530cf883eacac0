// Package analytics computes summary statistics over the logged gesture
// events. Summaries are cached briefly so the dashboard can poll without
// hammering the database.
package analytics

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ayusman/mudra/internal/store"
)

const (
	// DefaultCacheTTL bounds how stale a cached summary may be.
	DefaultCacheTTL = 60 * time.Second

	// DefaultAccuracyThreshold separates high-confidence events from the rest.
	DefaultAccuracyThreshold = 0.85
)

// GestureStats summarizes the logged events for one gesture.
type GestureStats struct {
	Gesture   string  `json:"gesture"`
	Count     int     `json:"count"`
	Share     float64 `json:"share"`
	MeanScore float64 `json:"mean_score"`
	StdDev    float64 `json:"std_dev"`
	HighConf  int     `json:"high_confidence"`
}

// Summary is the full analytics snapshot.
type Summary struct {
	TotalEvents  int            `json:"total_events"`
	HighConfRate float64        `json:"high_confidence_rate"`
	Gestures     []GestureStats `json:"gestures"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// Analyzer computes summaries over the event log.
type Analyzer struct {
	events    *store.EventRepository
	ttl       time.Duration
	threshold float64

	mu       sync.Mutex
	cached   *Summary
	cachedAt time.Time
}

// NewAnalyzer creates an Analyzer over the given event repository.
func NewAnalyzer(events *store.EventRepository) *Analyzer {
	return &Analyzer{
		events:    events,
		ttl:       DefaultCacheTTL,
		threshold: DefaultAccuracyThreshold,
	}
}

// SetCacheTTL overrides the cache lifetime. Zero disables caching.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ttl = ttl
	a.cached = nil
}

// Summary returns the current analytics snapshot, recomputing it when the
// cached copy has expired.
func (a *Analyzer) Summary() (*Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && a.ttl > 0 && time.Since(a.cachedAt) < a.ttl {
		return a.cached, nil
	}

	summary, err := a.compute()
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}

	a.cached = summary
	a.cachedAt = time.Now()
	return summary, nil
}

// Invalidate drops the cached summary so the next call recomputes.
func (a *Analyzer) Invalidate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cached = nil
}

func (a *Analyzer) compute() (*Summary, error) {
	scores, err := a.events.ScoresByGesture()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, xs := range scores {
		total += len(xs)
	}

	summary := &Summary{
		TotalEvents: total,
		GeneratedAt: time.Now(),
	}

	highConfTotal := 0
	for gesture, xs := range scores {
		gs := GestureStats{
			Gesture:   gesture,
			Count:     len(xs),
			MeanScore: stat.Mean(xs, nil),
		}
		if len(xs) > 1 {
			gs.StdDev = stat.StdDev(xs, nil)
		}
		if total > 0 {
			gs.Share = float64(len(xs)) / float64(total)
		}
		for _, x := range xs {
			if x >= a.threshold {
				gs.HighConf++
			}
		}
		highConfTotal += gs.HighConf
		summary.Gestures = append(summary.Gestures, gs)
	}

	if total > 0 {
		summary.HighConfRate = float64(highConfTotal) / float64(total)
	}

	// Stable ordering: most frequent first, name breaks ties.
	sort.Slice(summary.Gestures, func(i, j int) bool {
		if summary.Gestures[i].Count != summary.Gestures[j].Count {
			return summary.Gestures[i].Count > summary.Gestures[j].Count
		}
		return summary.Gestures[i].Gesture < summary.Gestures[j].Gesture
	})

	return summary, nil
}
