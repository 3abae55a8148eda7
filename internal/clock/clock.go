// Package clock advances simulated time ("rounds") from wall-clock ticks.
//
// One round at speed 1 takes one real minute. The speed lives in a
// [SpeedCell] that every tick reads afresh, so changing it never restarts the
// loop or loses accumulated rounds. External Set, Offset and Update calls go
// through the same lock as ticks and always apply to the latest value.
//
// A Clock starts idle: the first tick only records its timestamp. Pause
// returns it to idle so that resuming does not jump. Stop is final and
// idempotent; afterwards nothing changes the rounds.
package clock

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// ErrStopped is returned by mutations attempted after Stop.
var ErrStopped = errors.New("clock: stopped")

// SpeedCell is a float64 that one writer updates and ticks read without
// locking.
type SpeedCell struct {
	bits atomic.Uint64
}

func (s *SpeedCell) Load() float64 {
	return math.Float64frombits(s.bits.Load())
}

func (s *SpeedCell) Store(v float64) {
	s.bits.Store(math.Float64bits(v))
}

type Clock struct {
	speed SpeedCell

	mu      sync.Mutex
	rounds  float64
	last    time.Time
	running bool
	stopped bool
	ticks   int
}

// New returns an idle clock at round 0 with speed 0.
func New() *Clock {
	return &Clock{}
}

func (c *Clock) Speed() float64     { return c.speed.Load() }
func (c *Clock) SetSpeed(v float64) { c.speed.Store(v) }

// Tick advances the clock to now and returns the current rounds. The first
// tick after New or Pause only captures the reference timestamp. A timestamp
// earlier than the reference moves the reference without changing rounds.
func (c *Clock) Tick(now time.Time) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return c.rounds
	}
	c.ticks++
	if !c.running {
		c.last = now
		c.running = true
		return c.rounds
	}
	if delta := now.Sub(c.last); delta > 0 {
		c.rounds += delta.Minutes() * c.speed.Load()
	}
	c.last = now
	return c.rounds
}

func (c *Clock) Rounds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rounds
}

// Update replaces rounds with fn(rounds) atomically with respect to ticks.
func (c *Clock) Update(fn func(rounds float64) float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return ErrStopped
	}
	c.rounds = fn(c.rounds)
	return nil
}

func (c *Clock) Set(v float64) error {
	return c.Update(func(float64) float64 { return v })
}

func (c *Clock) Offset(delta float64) error {
	return c.Update(func(r float64) float64 { return r + delta })
}

// Pause drops the reference timestamp; the next tick starts a new interval.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Running reports whether the clock has a reference timestamp.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && !c.stopped
}

// Ticks counts the ticks accepted so far.
func (c *Clock) Ticks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Stop freezes the clock. Calling it again has no effect.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.running = false
}

func (c *Clock) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

// Run ticks the clock from ticks until ctx is done or ticks is closed, then
// stops it.
func (c *Clock) Run(ctx context.Context, ticks <-chan time.Time) error {
	defer c.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			c.Tick(now)
		}
	}
}

// Drive runs the clock from a ticker with the given interval.
func (c *Clock) Drive(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second / 60
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	return c.Run(ctx, t.C)
}
