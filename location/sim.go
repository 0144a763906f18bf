package location

import (
	"sync"

	"pizzadash/geo"
)

// Sim is a scripted walker used by the demo binary and integration tests.
// It holds a position, walks toward an optional target in fixed-size steps,
// and counts steps like a pedometer would.
type Sim struct {
	mu       sync.Mutex
	pos      geo.Point
	target   *geo.Point
	stepLen  float64 // meters per step
	steps    int
	watchers map[int]func(geo.Point)
	nextID   int
}

// NewSim creates a walker at the given start position.
// stepLenMeters is how far a single Step moves the walker.
func NewSim(start geo.Point, stepLenMeters float64) *Sim {
	return &Sim{
		pos:      start,
		stepLen:  stepLenMeters,
		watchers: make(map[int]func(geo.Point)),
	}
}

// Current returns the walker's position; a sim always has a fix
func (s *Sim) Current() (geo.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, true
}

// Watch registers a callback for position changes
func (s *Sim) Watch(fn func(geo.Point)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// SetTarget points the walker at a destination. Passing nil stops walking.
func (s *Sim) SetTarget(p *geo.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.target = nil
		return
	}
	t := *p
	s.target = &t
}

// Steps returns the pedometer count since construction
func (s *Sim) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Step advances one stride toward the target, clamping at arrival.
// Without a target the step only increments the pedometer.
func (s *Sim) Step() geo.Point {
	s.mu.Lock()
	s.steps++

	if s.target != nil {
		remaining := geo.Distance(s.pos, *s.target)
		if remaining <= s.stepLen {
			s.pos = *s.target
			s.target = nil
		} else {
			f := s.stepLen / remaining
			s.pos = geo.Point{
				Lat: s.pos.Lat + (s.target.Lat-s.pos.Lat)*f,
				Lon: s.pos.Lon + (s.target.Lon-s.pos.Lon)*f,
			}
		}
	}

	pos := s.pos
	fns := make([]func(geo.Point), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(pos)
	}
	return pos
}

// Service lifecycle. The walker runs no goroutines of its own; Stop
// clears the walk target so a restarted session starts at rest.
func (s *Sim) Name() string           { return "sim-location" }
func (s *Sim) Dependencies() []string { return nil }
func (s *Sim) Init(args ...any) error { return nil }
func (s *Sim) Start() error           { return nil }

func (s *Sim) Stop() error {
	s.SetTarget(nil)
	return nil
}

// Teleport moves the walker instantly, clearing any walk target
func (s *Sim) Teleport(p geo.Point) {
	s.mu.Lock()
	s.pos = p
	s.target = nil
	fns := make([]func(geo.Point), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}
