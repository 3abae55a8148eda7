// Package session owns the live state of one illustration: the parameter
// set, the clock that advances rounds, and the cached trace.
//
// Params are replaced whole and read through an atomic pointer, so a frame
// always sees one consistent parameter set together with one rounds value.
// The geometry itself lives in package geom; a Session only decides which
// inputs a frame uses.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/handspin/internal/clock"
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/logging"
)

// Frame is everything a renderer needs for one picture.
type Frame struct {
	Params config.Params
	Dims   geom.Dimensions
	Rounds float64
	A, B   geom.Family
	Grid   geom.Grid
}

// Primary returns the highlighted corner of the frame.
func (f Frame) Primary() (geom.Point, bool) {
	return f.Grid.Primary()
}

type traceEntry struct {
	dims  geom.Dimensions
	curve geom.Curve
}

type Session struct {
	mu         sync.Mutex
	params     atomic.Pointer[config.Params]
	clock      *clock.Clock
	trace      atomic.Pointer[traceEntry]
	traceSteps int
	metrics    []Metric
	closeOnce  sync.Once
}

type Option func(*Session)

// WithTraceSteps sets the trace resolution.
func WithTraceSteps(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.traceSteps = n
		}
	}
}

// WithClock makes the session use c instead of a fresh clock.
func WithClock(c *clock.Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

func New(p config.Params, opts ...Option) *Session {
	s := &Session{
		clock:      clock.New(),
		traceSteps: geom.DefaultTraceSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Replace(p)
	return s
}

// FromString starts a session from a configuration string.
func FromString(str string, opts ...Option) *Session {
	return New(config.Decode(str), opts...)
}

func (s *Session) Params() config.Params {
	return *s.params.Load()
}

// Replace installs p and feeds its base speed to the clock. Accumulated
// rounds are kept.
func (s *Session) Replace(p config.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(p)
}

func (s *Session) install(p config.Params) {
	s.params.Store(&p)
	s.clock.SetSpeed(p.BaseSpeed)
	logging.Logger().Debug("params replaced", "config", config.Encode(p))
}

// Update replaces the params with fn applied to the current ones. Concurrent
// updates are serialized, so none is lost.
func (s *Session) Update(fn func(config.Params) config.Params) config.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := fn(s.Params())
	s.install(p)
	return p
}

// Apply decodes a configuration string and installs the result.
func (s *Session) Apply(str string) config.Params {
	p := config.Decode(str)
	s.Replace(p)
	return p
}

// ConfigString encodes the current params.
func (s *Session) ConfigString() string {
	return config.Encode(s.Params())
}

func (s *Session) Clock() *clock.Clock { return s.clock }

func (s *Session) Rounds() float64 { return s.clock.Rounds() }

// Tick advances the clock to now and returns the resulting frame.
func (s *Session) Tick(now time.Time) Frame {
	p := s.Params()
	return build(p, s.clock.Tick(now))
}

// Frame returns the geometry at the current rounds without ticking.
func (s *Session) Frame() Frame {
	p := s.Params()
	return build(p, s.clock.Rounds())
}

// FrameAt returns the geometry of the current params at an arbitrary round.
func (s *Session) FrameAt(rounds float64) Frame {
	return build(s.Params(), rounds)
}

func build(p config.Params, rounds float64) Frame {
	d := geom.Resolve(p)
	a, b := geom.Families(d, rounds)
	return Frame{
		Params: p,
		Dims:   d,
		Rounds: rounds,
		A:      a,
		B:      b,
		Grid:   geom.Compose(a, b),
	}
}

// Trace returns the trace of the current params. It is computed once per
// distinct set of dimensions and shared between callers, who must not modify
// it.
func (s *Session) Trace() geom.Curve {
	d := geom.Resolve(s.Params())
	if e := s.trace.Load(); e != nil && e.dims == d {
		return e.curve
	}
	e := &traceEntry{dims: d, curve: geom.TraceFor(d, s.traceSteps)}
	s.trace.Store(e)
	logging.Logger().Debug("trace sampled", "steps", s.traceSteps, "speedup_a", d.SpeedupA, "speedup_b", d.SpeedupB)
	return e.curve
}

// Close stops the clock. It is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.clock.Stop()
		logging.Logger().Debug("session closed", "rounds", s.clock.Rounds())
	})
}
