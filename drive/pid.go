package main

// PIDGains holds proportional/derivative/integral gains.
type PIDGains struct {
	Kp float64 `json:"kp"`
	Kd float64 `json:"kd"`
	Ki float64 `json:"ki"`
}

// PIDSample is one proportional/derivative/integral error snapshot. The core
// rebuilds it from scratch every cycle: no controller state survives a cycle,
// so each sample treats its input as the first measurement.
type PIDSample struct {
	Proportional float64
	Derivative   float64
	Integral     float64
}

// NewPIDSample starts tracking from a first error measurement.
func NewPIDSample(err float64) PIDSample {
	return PIDSample{Proportional: err}
}

// Update folds in a new error measurement taken dt seconds after the
// previous one. dt must be > 0; callers guarantee that.
func (p PIDSample) Update(err, dt float64) PIDSample {
	return PIDSample{
		Proportional: err,
		Derivative:   (err - p.Proportional) / dt,
		Integral:     p.Integral + err*dt,
	}
}

// Actuate turns the sample into a corrective command: positive error yields
// a negative command.
func (p PIDSample) Actuate(g PIDGains) float64 {
	return -(g.Kp*p.Proportional + g.Kd*p.Derivative + g.Ki*p.Integral)
}
