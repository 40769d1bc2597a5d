// Package optimize is a time-budgeted random-shooting trajectory planner.
// Given a problem (policy, one-step predictor, reward, initial state,
// horizon) it rolls out candidate action sequences sampled from the policy's
// bands and keeps the best by total reward. One rollout is always seeded
// from the band midpoints before the budget is checked, so Solve returns a
// plan even with a zero budget.
package optimize

import (
	"math/rand/v2"
	"time"
)

// Actuation is one (steering, throttle) command applied per plan step.
type Actuation struct {
	Steering float64
	Throttle float64
}

// Problem binds the pieces of one planning cycle. All callbacks must be free
// of hidden state: the solver may invoke them in any order, any number of
// times.
type Problem[S any] struct {
	Policy  func(S) (steering, throttle Distribution)
	Predict func(S, Actuation) S
	Reward  func(S) float64
	Initial S
	Horizon int
}

// Step is one (state, actuation) pair of a plan: the action taken and the
// state predicted to follow it.
type Step[S any] struct {
	State S
	Act   Actuation
}

// Solution is the best plan found within the budget.
type Solution[S any] struct {
	plan  []Step[S]
	value float64
}

// Plan returns the plan's steps in order. Callers apply the first actuation;
// the remaining states are diagnostic.
func (s Solution[S]) Plan() []Step[S] { return s.plan }

// ExpectedValue is the summed reward of the returned plan.
func (s Solution[S]) ExpectedValue() float64 { return s.value }

// Options bound one Solve call.
type Options struct {
	// TimeBudget caps the wall-clock time spent sampling. The budget is
	// checked between rollouts, never mid-rollout.
	TimeBudget time.Duration
	// Src seeds the sampler; nil picks a fresh PCG source.
	Src rand.Source
}

// Solve searches for the highest-value plan within the time budget.
func Solve[S any](p Problem[S], opts Options) Solution[S] {
	src := opts.Src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	deadline := time.Now().Add(opts.TimeBudget)

	best, bestValue := rollout(p, func(d Distribution) float64 { return d.Mean() })
	draw := func(d Distribution) float64 { return d.Sample(src) }
	for time.Now().Before(deadline) {
		plan, value := rollout(p, draw)
		if value > bestValue {
			best, bestValue = plan, value
		}
	}
	return Solution[S]{plan: best, value: bestValue}
}

func rollout[S any](p Problem[S], draw func(Distribution) float64) ([]Step[S], float64) {
	steps := make([]Step[S], 0, p.Horizon)
	state := p.Initial
	total := 0.0
	for i := 0; i < p.Horizon; i++ {
		steerDist, throttleDist := p.Policy(state)
		act := Actuation{Steering: draw(steerDist), Throttle: draw(throttleDist)}
		state = p.Predict(state, act)
		total += p.Reward(state)
		steps = append(steps, Step[S]{State: state, Act: act})
	}
	return steps, total
}
