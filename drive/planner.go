package main

import (
	"fmt"

	"mpc-drive-core/frenet"
	"mpc-drive-core/optimize"
	"mpc-drive-core/utils"
)

// Planner runs one control cycle: telemetry in, actuation plus diagnostic
// trajectory out. It holds no state across cycles; the centerline projection
// is rebuilt from every cycle's waypoints, so one Planner may serve
// concurrent sessions.
type Planner struct {
	cfg    Config
	dyn    Dynamics
	policy Policy
	log    *utils.Logger
}

func NewPlanner(cfg Config, log *utils.Logger) *Planner {
	return &Planner{
		cfg:    cfg,
		dyn:    NewDynamics(cfg),
		policy: NewPolicy(cfg),
		log:    log,
	}
}

// PlanResult is the outcome of one cycle.
type PlanResult struct {
	Act   Actuation
	PathX []float64 // predicted trajectory, vehicle frame
	PathY []float64
	WayX  []float64 // telemetry waypoints, vehicle frame
	WayY  []float64
	Value float64 // expected value of the chosen plan, diagnostic only
}

// Cycle plans the next actuation for one telemetry snapshot. An error means
// the snapshot is unusable (degenerate waypoint list) and no command should
// be sent for it.
func (pl *Planner) Cycle(tel Telemetry) (PlanResult, error) {
	wayX, wayY := waypointsToVehicleFrame(tel.PtsX, tel.PtsY, tel.X, tel.Y, tel.Psi)
	proj, err := frenet.Build(wayX, wayY)
	if err != nil {
		return PlanResult{}, fmt.Errorf("build centerline: %w", err)
	}
	dt := pl.cfg.Period().Seconds()

	// The vehicle frame puts the car at the origin heading along +x, so the
	// initial pose is all zeros and the velocity is (speed, 0).
	s, d, vs, vd := proj.Project(0, 0, tel.Speed, 0)
	st := State{V: tel.Speed, Vx: tel.Speed, S: s, D: d, Vs: vs, Vd: vd}

	// One step under the actuation currently in effect compensates for the
	// cycle of latency before the new command reaches the vehicle.
	st = pl.dyn.Predict(st, Actuation{Steering: tel.SteeringAngle, Throttle: tel.Throttle}, proj, dt)

	problem := optimize.Problem[State]{
		Policy:  pl.policy.Propose,
		Predict: func(s State, a Actuation) State { return pl.dyn.Predict(s, a, proj, dt) },
		Reward:  pl.cfg.Reward.Value,
		Initial: st,
		Horizon: pl.cfg.Horizon,
	}
	sol := optimize.Solve(problem, optimize.Options{TimeBudget: pl.cfg.Period()})

	plan := sol.Plan()
	if len(plan) == 0 {
		// The solver contract makes this unreachable; a straight coast still
		// beats an undefined command.
		pl.log.Warn("solver returned empty plan, applying safe default")
		return PlanResult{
			Act:  Actuation{Throttle: pl.cfg.CoastThrottle},
			WayX: wayX,
			WayY: wayY,
		}, nil
	}

	res := PlanResult{
		Act:   plan[0].Act,
		PathX: make([]float64, len(plan)),
		PathY: make([]float64, len(plan)),
		WayX:  wayX,
		WayY:  wayY,
		Value: sol.ExpectedValue(),
	}
	for i, step := range plan {
		res.PathX[i] = step.State.X
		res.PathY[i] = step.State.Y
	}
	return res, nil
}
