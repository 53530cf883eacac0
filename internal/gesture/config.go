package gesture

import (
	"sync/atomic"
	"time"
)

// Bounds enforced by Normalized. Callers outside these ranges are clamped
// rather than rejected.
const (
	MinWindowSize = 3
	MaxWindowSize = 21

	MinEmissionIntervalFloorMs = 100
	MaxEmissionIntervalMs      = 2000
)

// Config holds the tunable recognition parameters. A Config value is treated
// as immutable for the duration of one frame; updates go through Settings.
type Config struct {
	// AngleCosThreshold is the PIP-joint cosine below which a finger counts
	// as straight (more negative = straighter).
	AngleCosThreshold float64 `json:"angle_cos_threshold"`

	// OKThreshold is the maximum normalized thumb-tip/index-tip distance for
	// the OK pinch.
	OKThreshold float64 `json:"ok_threshold"`

	// ThumbUpScoreThreshold is the minimum vertical thumb projection for the
	// primary THUMBS_UP predicate.
	ThumbUpScoreThreshold float64 `json:"thumb_up_score_threshold"`

	// ThumbSideScoreThreshold is the minimum lateral thumb projection for the
	// primary SIX predicate.
	ThumbSideScoreThreshold float64 `json:"thumb_side_score_threshold"`

	// ThumbOpenThreshold is the minimum normalized thumb-tip/index-MCP
	// distance for the thumb to count as open.
	ThumbOpenThreshold float64 `json:"thumb_open_threshold"`

	// AbductionDegreeThreshold is the thumb abduction angle above which the
	// thumb counts as vertical (THUMBS_UP-like).
	AbductionDegreeThreshold float64 `json:"abduction_degree_threshold"`

	// WindowSize is the smoothing window capacity, clamped to [3,21].
	WindowSize int `json:"window_size"`

	// MinEmissionIntervalMs is the minimum gap between emitted events.
	MinEmissionIntervalMs int `json:"min_emission_interval_ms"`

	// EmitUnknown controls whether stabilized UNKNOWN labels are emitted.
	EmitUnknown bool `json:"emit_unknown"`
}

// DefaultConfig returns the recognition defaults.
func DefaultConfig() Config {
	return Config{
		AngleCosThreshold:        -0.6,
		OKThreshold:              0.30,
		ThumbUpScoreThreshold:    0.35,
		ThumbSideScoreThreshold:  0.35,
		ThumbOpenThreshold:       0.45,
		AbductionDegreeThreshold: 40,
		WindowSize:               5,
		MinEmissionIntervalMs:    500,
		EmitUnknown:              false,
	}
}

// Normalized returns a copy of c with every field clamped to its documented
// bounds. Zero-valued numeric fields fall back to the default.
func (c Config) Normalized() Config {
	def := DefaultConfig()

	if c.AngleCosThreshold == 0 {
		c.AngleCosThreshold = def.AngleCosThreshold
	}
	c.AngleCosThreshold = clampFloat(c.AngleCosThreshold, -1, 0)

	if c.OKThreshold == 0 {
		c.OKThreshold = def.OKThreshold
	}
	c.OKThreshold = clampFloat(c.OKThreshold, 0.05, 1)

	if c.ThumbUpScoreThreshold == 0 {
		c.ThumbUpScoreThreshold = def.ThumbUpScoreThreshold
	}
	c.ThumbUpScoreThreshold = clampFloat(c.ThumbUpScoreThreshold, 0.05, 2)

	if c.ThumbSideScoreThreshold == 0 {
		c.ThumbSideScoreThreshold = def.ThumbSideScoreThreshold
	}
	c.ThumbSideScoreThreshold = clampFloat(c.ThumbSideScoreThreshold, 0.05, 2)

	if c.ThumbOpenThreshold == 0 {
		c.ThumbOpenThreshold = def.ThumbOpenThreshold
	}
	c.ThumbOpenThreshold = clampFloat(c.ThumbOpenThreshold, 0.05, 2)

	if c.AbductionDegreeThreshold == 0 {
		c.AbductionDegreeThreshold = def.AbductionDegreeThreshold
	}
	c.AbductionDegreeThreshold = clampFloat(c.AbductionDegreeThreshold, 5, 90)

	if c.WindowSize == 0 {
		c.WindowSize = def.WindowSize
	}
	c.WindowSize = clampInt(c.WindowSize, MinWindowSize, MaxWindowSize)

	if c.MinEmissionIntervalMs == 0 {
		c.MinEmissionIntervalMs = def.MinEmissionIntervalMs
	}
	c.MinEmissionIntervalMs = clampInt(c.MinEmissionIntervalMs, MinEmissionIntervalFloorMs, MaxEmissionIntervalMs)

	return c
}

// MinEmissionInterval returns the emission interval as a duration.
func (c *Config) MinEmissionInterval() time.Duration {
	return time.Duration(c.MinEmissionIntervalMs) * time.Millisecond
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Settings publishes immutable per-frame Config snapshots. Writers replace
// the whole snapshot; a classification in progress keeps the pointer it
// loaded and never observes a half-applied update.
type Settings struct {
	current atomic.Pointer[Config]
}

// NewSettings creates a Settings holder seeded with the given config.
func NewSettings(c Config) *Settings {
	s := &Settings{}
	s.Update(c)
	return s
}

// Snapshot returns the current config. The returned pointer must be treated
// as read-only.
func (s *Settings) Snapshot() *Config {
	return s.current.Load()
}

// Update normalizes and atomically publishes a new config.
func (s *Settings) Update(c Config) {
	n := c.Normalized()
	s.current.Store(&n)
}
