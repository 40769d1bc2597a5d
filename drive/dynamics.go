package main

import (
	"math"

	"mpc-drive-core/frenet"
	"mpc-drive-core/optimize"
)

// State is the full vehicle state: working-frame pose and velocity plus its
// road-relative projection. (S, D, Vs, Vd) is always the projection of
// (X, Y, Vx, Vy) onto the cycle's centerline; Predict recomputes the whole
// block together, never a part of it.
type State struct {
	X, Y   float64
	Psi    float64
	V      float64
	Vx, Vy float64
	S, D   float64
	Vs, Vd float64
}

// Actuation is the (steering, throttle) command pair. Steering is the
// normalized lock position in [-1, 1]; throttle is positive to accelerate,
// negative to brake.
type Actuation = optimize.Actuation

// Dynamics is the fixed bicycle motion model with a small-slip-angle
// approximation.
type Dynamics struct {
	Wheelbase    float64
	SteerLockRad float64
}

func NewDynamics(cfg Config) Dynamics {
	return Dynamics{
		Wheelbase:    cfg.Wheelbase,
		SteerLockRad: cfg.SteerLockDeg * math.Pi / 180,
	}
}

// Predict advances the state one step of dt seconds under act. Position
// moves at the previous velocity (first-order explicit integration); the
// road-relative block is re-projected from the new pose. dt must be > 0.
func (m Dynamics) Predict(st State, act Actuation, proj *frenet.Projection, dt float64) State {
	steer := act.Steering * m.SteerLockRad

	var next State
	next.X = st.X + st.Vx*dt
	next.Y = st.Y + st.Vy*dt
	next.Psi = st.Psi - st.V*dt*steer/m.Wheelbase
	next.V = st.V + act.Throttle*dt
	next.Vx = next.V * math.Cos(next.Psi)
	next.Vy = next.V * math.Sin(next.Psi)
	next.S, next.D, next.Vs, next.Vd = proj.Project(next.X, next.Y, next.Vx, next.Vy)
	return next
}
