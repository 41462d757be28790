// Package selection tracks the start/end sample range chosen over a buffer.
package selection

// State is a start/end pair over n samples with 0 <= start <= end <= n-1.
// The zero value is an empty selection over no samples.
type State struct {
	start int
	end   int
	n     int
}

// New returns a selection spanning all n samples.
func New(n int) State {
	var s State
	s.Reset(n)
	return s
}

// Reset re-initializes the selection to (0, n-1) for a new buffer.
func (s *State) Reset(n int) {
	if n < 0 {
		n = 0
	}
	s.n = n
	s.start = 0
	s.end = max(0, n-1)
}

// Len returns the number of samples the selection ranges over.
func (s State) Len() int { return s.n }

// Max returns the largest valid index.
func (s State) Max() int { return max(0, s.n-1) }

// Bounds returns the start and end indices.
func (s State) Bounds() (start, end int) { return s.start, s.end }

// SetStart moves the start, pushing the end forward if start passes it.
func (s *State) SetStart(i int) {
	s.start = s.clamp(i)
	if s.start > s.end {
		s.end = s.start
	}
}

// SetEnd moves the end, pulling the start back if end passes it.
func (s *State) SetEnd(i int) {
	s.end = s.clamp(i)
	if s.end < s.start {
		s.start = s.end
	}
}

// MoveStart shifts the start by delta samples.
func (s *State) MoveStart(delta int) { s.SetStart(s.start + delta) }

// MoveEnd shifts the end by delta samples.
func (s *State) MoveEnd(delta int) { s.SetEnd(s.end + delta) }

func (s State) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > s.Max() {
		return s.Max()
	}
	return i
}
