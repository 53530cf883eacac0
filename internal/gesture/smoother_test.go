package gesture

import "testing"

func TestSmootherMajority(t *testing.T) {
	s := NewSmoother(5)

	// A single flicker inside a stable run must not change the output.
	seq := []Label{LabelThumbsUp, LabelThumbsUp, LabelSix, LabelThumbsUp, LabelThumbsUp}
	var got Label
	for _, l := range seq {
		got = s.Push(l)
	}
	if got != LabelThumbsUp {
		t.Errorf("Push sequence = %s, want %s", got, LabelThumbsUp)
	}
}

func TestSmootherRecencyTieBreak(t *testing.T) {
	s := NewSmoother(5)

	// Two-two tie: the label observed most recently wins.
	seq := []Label{LabelThumbsUp, LabelThumbsUp, LabelSix, LabelSix}
	var got Label
	for _, l := range seq {
		got = s.Push(l)
	}
	if got != LabelSix {
		t.Errorf("Push sequence = %s, want %s", got, LabelSix)
	}
}

func TestSmootherEvictsOldest(t *testing.T) {
	s := NewSmoother(3)

	for i := 0; i < 3; i++ {
		s.Push(LabelFist)
	}
	s.Push(LabelPalm)
	s.Push(LabelPalm)

	if got := s.Current(); got != LabelPalm {
		t.Errorf("Current() = %s, want %s", got, LabelPalm)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestSmootherCapacityClamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, MinWindowSize},
		{1, MinWindowSize},
		{5, 5},
		{21, MaxWindowSize},
		{100, MaxWindowSize},
	}

	for _, tt := range tests {
		s := NewSmoother(tt.in)
		if s.capacity != tt.want {
			t.Errorf("NewSmoother(%d) capacity = %d, want %d", tt.in, s.capacity, tt.want)
		}
	}
}

func TestSmootherShrinkEvicts(t *testing.T) {
	s := NewSmoother(7)
	for i := 0; i < 7; i++ {
		if i < 4 {
			s.Push(LabelFist)
		} else {
			s.Push(LabelPalm)
		}
	}

	// Shrinking to 3 keeps only the newest labels.
	s.SetCapacity(3)
	if got := s.Len(); got != 3 {
		t.Fatalf("Len() after shrink = %d, want 3", got)
	}
	if got := s.Current(); got != LabelPalm {
		t.Errorf("Current() after shrink = %s, want %s", got, LabelPalm)
	}
}

func TestSmootherEmptyWindow(t *testing.T) {
	s := NewSmoother(5)
	if got := s.Current(); got != LabelUnknown {
		t.Errorf("Current() = %s, want %s", got, LabelUnknown)
	}

	s.Push(LabelV)
	s.Reset()
	if got := s.Current(); got != LabelUnknown {
		t.Errorf("Current() after Reset = %s, want %s", got, LabelUnknown)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() after Reset = %d, want 0", got)
	}
}

func TestSmootherWindowCopy(t *testing.T) {
	s := NewSmoother(3)
	s.Push(LabelOK)
	s.Push(LabelV)

	w := s.Window()
	if len(w) != 2 || w[0] != LabelOK || w[1] != LabelV {
		t.Fatalf("Window() = %v, want [OK V]", w)
	}

	// Mutating the copy must not affect the smoother.
	w[0] = LabelFist
	if got := s.Window()[0]; got != LabelOK {
		t.Errorf("Window()[0] = %s, want %s", got, LabelOK)
	}
}
