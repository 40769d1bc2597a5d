package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mpc-drive-core/frenet"
)

func straightRoad(t *testing.T) *frenet.Projection {
	t.Helper()
	p, err := frenet.Build([]float64{-10, 100}, []float64{0, 0})
	require.NoError(t, err)
	return p
}

func TestPredictDeterministic(t *testing.T) {
	dyn := NewDynamics(DefaultConfig())
	proj := straightRoad(t)
	st := State{X: 1, Y: 0.5, Psi: 0.1, V: 12, Vx: 11.9, Vy: 1.2}
	act := Actuation{Steering: 0.3, Throttle: 0.8}

	first := dyn.Predict(st, act, proj, 0.1)
	second := dyn.Predict(st, act, proj, 0.1)
	require.Equal(t, first, second)
}

func TestPredictStraightStep(t *testing.T) {
	dyn := NewDynamics(DefaultConfig())
	proj := straightRoad(t)
	st := State{V: 10, Vx: 10}

	next := dyn.Predict(st, Actuation{}, proj, 0.1)
	require.InDelta(t, 1.0, next.X, 1e-9)
	require.InDelta(t, 0.0, next.Y, 1e-9)
	require.InDelta(t, 0.0, next.Psi, 1e-9)
	require.InDelta(t, 10.0, next.V, 1e-9)
	require.InDelta(t, 10.0, next.Vx, 1e-9)
	require.InDelta(t, 0.0, next.Vy, 1e-9)
	require.InDelta(t, 11.0, next.S, 1e-9) // road starts 10 behind the origin
	require.InDelta(t, 0.0, next.D, 1e-9)
	require.InDelta(t, 10.0, next.Vs, 1e-9)
	require.InDelta(t, 0.0, next.Vd, 1e-9)
}

func TestPredictThrottleChangesSpeed(t *testing.T) {
	dyn := NewDynamics(DefaultConfig())
	proj := straightRoad(t)
	st := State{V: 10, Vx: 10}

	next := dyn.Predict(st, Actuation{Throttle: 1}, proj, 0.1)
	require.InDelta(t, 10.1, next.V, 1e-9)
	require.InDelta(t, 10.1, next.Vx, 1e-9)

	next = dyn.Predict(st, Actuation{Throttle: -1}, proj, 0.1)
	require.InDelta(t, 9.9, next.V, 1e-9)
}

func TestPredictSteeringTurnsHeading(t *testing.T) {
	dyn := NewDynamics(DefaultConfig())
	proj := straightRoad(t)
	st := State{V: 10, Vx: 10}

	right := dyn.Predict(st, Actuation{Steering: 1}, proj, 0.1)
	require.Negative(t, right.Psi)
	require.Negative(t, right.Vy)

	left := dyn.Predict(st, Actuation{Steering: -1}, proj, 0.1)
	require.Positive(t, left.Psi)
	require.InDelta(t, right.Psi, -left.Psi, 1e-12)
}
