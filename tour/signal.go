package tour

import "sync/atomic"

// ActiveSignal tells unrelated UI that a tour overlay is on screen so it
// can hold back competing overlays. The zero value is inactive.
type ActiveSignal struct {
	v atomic.Bool
}

func NewActiveSignal() *ActiveSignal {
	return &ActiveSignal{}
}

func (s *ActiveSignal) Set(active bool) {
	if s == nil {
		return
	}
	s.v.Store(active)
}

func (s *ActiveSignal) Active() bool {
	if s == nil {
		return false
	}
	return s.v.Load()
}

// Reset returns the signal to its initial state.
func (s *ActiveSignal) Reset() { s.Set(false) }
