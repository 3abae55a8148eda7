package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/handspin/internal/clock"
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/logging"
)

// MaxRecordFrames caps the size of a single recording.
const MaxRecordFrames = 200000

var ErrInvalidRecord = errors.New("session: invalid record config")

// Metric observes recorded frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type RecordConfig struct {
	// Duration is the wall-clock time being replayed.
	Duration time.Duration
	// FPS is the tick rate of the replay.
	FPS int
}

func DefaultRecordConfig() RecordConfig {
	return RecordConfig{Duration: 30 * time.Second, FPS: 30}
}

// Sample is one recorded frame: its elapsed wall-clock time, the rounds at
// that moment and all corners in row-major order.
type Sample struct {
	Time    float64
	Rounds  float64
	Corners []geom.Point
}

type Recording struct {
	Params   config.Params
	Duration time.Duration
	FPS      int
	Rows     int
	Cols     int
	Samples  []Sample
	Metrics  map[string]float64
}

func (s *Session) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// Record replays cfg.Duration of wall-clock time at cfg.FPS with synthetic
// timestamps, starting from the session's current rounds. The session's own
// clock is not touched.
func (s *Session) Record(ctx context.Context, cfg RecordConfig) (*Recording, error) {
	if err := validateRecord(cfg); err != nil {
		return nil, err
	}

	p := s.Params()
	interval := time.Second / time.Duration(cfg.FPS)
	frames := int(cfg.Duration / interval)

	c := clock.New()
	c.SetSpeed(p.BaseSpeed)
	if err := c.Set(s.clock.Rounds()); err != nil {
		return nil, err
	}

	d := geom.Resolve(p)
	rec := &Recording{
		Params:   p,
		Duration: cfg.Duration,
		FPS:      cfg.FPS,
		Rows:     d.CornersA,
		Cols:     d.CornersB,
		Samples:  make([]Sample, 0, frames+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	start := time.Unix(0, 0)
	for i := 0; i <= frames; i++ {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}

		elapsed := time.Duration(i) * interval
		f := build(p, c.Tick(start.Add(elapsed)))

		for _, m := range s.metrics {
			m.Observe(f)
		}

		corners := make([]geom.Point, 0, f.Grid.Len())
		f.Grid.Each(func(_, _ int, pt geom.Point) {
			corners = append(corners, pt)
		})
		rec.Samples = append(rec.Samples, Sample{
			Time:    elapsed.Seconds(),
			Rounds:  f.Rounds,
			Corners: corners,
		})
	}
	c.Stop()

	for _, m := range s.metrics {
		rec.Metrics[m.Name()] = m.Value()
	}

	logging.Logger().Info("recorded", "frames", len(rec.Samples), "config", config.Encode(p))
	return rec, nil
}

func validateRecord(cfg RecordConfig) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v: %w", cfg.Duration, ErrInvalidRecord)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d: %w", cfg.FPS, ErrInvalidRecord)
	}
	if cfg.FPS > int(time.Second) {
		return fmt.Errorf("fps %d is finer than a nanosecond: %w", cfg.FPS, ErrInvalidRecord)
	}
	if frames := cfg.Duration.Seconds() * float64(cfg.FPS); frames > MaxRecordFrames {
		return fmt.Errorf("%.0f frames exceeds %d: %w", frames, MaxRecordFrames, ErrInvalidRecord)
	}
	return nil
}

// PrimaryPath returns the primary corner of every sample; samples without
// corners are skipped.
func (r *Recording) PrimaryPath() geom.Curve {
	out := make(geom.Curve, 0, len(r.Samples))
	for _, s := range r.Samples {
		if len(s.Corners) > 0 {
			out = append(out, s.Corners[0])
		}
	}
	return out
}
