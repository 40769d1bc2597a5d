package main

import (
	"math"

	"mpc-drive-core/optimize"
)

// Policy seeds the solver's search neighborhood. It does not pick an action:
// it emits a uniform band around a PID-derived steering estimate and around
// a cruise/coast throttle baseline.
type Policy struct {
	Gains          PIDGains
	MaxSpeed       float64
	SteerBand      float64
	ThrottleBand   float64
	CruiseThrottle float64
	CoastThrottle  float64
}

func NewPolicy(cfg Config) Policy {
	return Policy{
		Gains:          cfg.Steering,
		MaxSpeed:       cfg.MaxSpeed,
		SteerBand:      cfg.SteerBand,
		ThrottleBand:   cfg.ThrottleBand,
		CruiseThrottle: cfg.CruiseThrottle,
		CoastThrottle:  cfg.CoastThrottle,
	}
}

// Propose returns the steering and throttle bands for st.
func (p Policy) Propose(st State) (steering, throttle optimize.Distribution) {
	sample := PIDSample{
		Proportional: st.D,
		// normalized lateral rate; the +0.1 keeps it finite at a standstill
		Derivative: st.Vd / math.Sqrt(st.Vd*st.Vd+st.Vs*st.Vs+0.1),
	}
	steer := clampFloat(sample.Actuate(p.Gains), -1, 1)

	base := p.CruiseThrottle
	if st.V >= p.MaxSpeed {
		base = p.CoastThrottle
	}
	return optimize.UniformAround(steer, p.SteerBand), optimize.UniformAround(base, p.ThrottleBand)
}

// clampFloat clamps value between min and max.
func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
