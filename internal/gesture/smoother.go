package gesture

// Smoother stabilizes the noisy per-frame label stream with a majority vote
// over a bounded trailing window. One Smoother exists per tracking session
// and is reset whenever the hand is lost.
type Smoother struct {
	window   []Label
	capacity int
}

// NewSmoother creates a Smoother with the given window capacity, clamped to
// [MinWindowSize, MaxWindowSize].
func NewSmoother(capacity int) *Smoother {
	capacity = clampInt(capacity, MinWindowSize, MaxWindowSize)
	return &Smoother{
		window:   make([]Label, 0, capacity),
		capacity: capacity,
	}
}

// SetCapacity adjusts the window capacity, clamping to the documented bounds
// and evicting the oldest labels if the window shrinks.
func (s *Smoother) SetCapacity(capacity int) {
	capacity = clampInt(capacity, MinWindowSize, MaxWindowSize)
	s.capacity = capacity
	for len(s.window) > capacity {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
}

// Push appends a raw label, evicting the oldest when over capacity, and
// returns the current majority label. Count ties prefer the most recent raw
// label; otherwise the first-encountered maximum wins. An empty window
// yields UNKNOWN.
func (s *Smoother) Push(label Label) Label {
	if len(s.window) >= s.capacity {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
	s.window = append(s.window, label)
	return s.Current()
}

// Current returns the majority label of the window without mutating it.
func (s *Smoother) Current() Label {
	if len(s.window) == 0 {
		return LabelUnknown
	}

	counts := make(map[Label]int, len(s.window))
	for _, l := range s.window {
		counts[l]++
	}

	best := s.window[0]
	bestCount := 0
	for _, l := range s.window {
		if counts[l] > bestCount {
			best = l
			bestCount = counts[l]
		}
	}

	// Recency tie-break: the most recent raw label wins a count tie.
	recent := s.window[len(s.window)-1]
	if counts[recent] == bestCount {
		best = recent
	}

	return best
}

// Len returns the number of labels currently held.
func (s *Smoother) Len() int {
	return len(s.window)
}

// Window returns a copy of the current window, oldest first.
func (s *Smoother) Window() []Label {
	out := make([]Label, len(s.window))
	copy(out, s.window)
	return out
}

// Reset clears the window. Called whenever hand presence is lost.
func (s *Smoother) Reset() {
	s.window = s.window[:0]
}
