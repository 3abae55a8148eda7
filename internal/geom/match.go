package geom

import (
	"errors"
	"math"

	"github.com/san-kum/handspin/internal/config"
)

// ErrNoRotation is returned when neither family turns, so no base speed can
// produce the requested hand speed.
var ErrNoRotation = errors.New("geom: both speedups are zero, hands do not rotate")

// MatchRotationSpeed returns p with BaseSpeed chosen so that the faster
// family turns rpm times per minute. The sign of the current base speed is
// kept unless it is zero.
func MatchRotationSpeed(p config.Params, rpm float64) (config.Params, error) {
	d := Resolve(p)
	fastest := math.Max(math.Abs(d.SpeedupA), math.Abs(d.SpeedupB))
	if fastest == 0 {
		return p, ErrNoRotation
	}
	speed := math.Abs(rpm) / fastest
	if p.BaseSpeed < 0 {
		speed = -speed
	}
	p.BaseSpeed = speed
	return p, nil
}

// HandSpeeds returns the revolutions per minute of each family at the
// current base speed.
func HandSpeeds(p config.Params) (a, b float64) {
	d := Resolve(p)
	return d.SpeedupA * p.BaseSpeed, d.SpeedupB * p.BaseSpeed
}

// AdoptAutomaticSpeedups switches p to manual mode starting from the
// speedups automatic mode would use, so the motion does not change.
func AdoptAutomaticSpeedups(p config.Params) config.Params {
	auto := p
	auto.ManualSpeedup = false
	d := Resolve(auto)
	p.ManualSpeedup = true
	p.SpeedupA = d.SpeedupA
	p.SpeedupB = d.SpeedupB
	return p
}
