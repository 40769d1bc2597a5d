package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewardOnRoadThreshold(t *testing.T) {
	w := DefaultConfig().Reward

	// just inside the road edge: on-road bonus applies
	on := w.Value(State{Vs: 5, D: 2.99})
	require.InDelta(t, 5+10-15*2.99, on, 1e-9)

	// just outside: the penalty replaces the bonus
	off := w.Value(State{Vs: 5, D: 3.01})
	require.InDelta(t, 5-1000-15*3.01, off, 1e-9)

	// the bound itself counts as off-road
	edge := w.Value(State{Vs: 5, D: 3.0})
	require.InDelta(t, 5-1000-15*3.0, edge, 1e-9)
}

func TestRewardSymmetricInOffsetSign(t *testing.T) {
	w := DefaultConfig().Reward
	require.Equal(t, w.Value(State{Vs: 2, D: 1.5}), w.Value(State{Vs: 2, D: -1.5}))
}

func TestRewardPenalizesSway(t *testing.T) {
	w := DefaultConfig().Reward
	calm := w.Value(State{Vs: 5})
	weaving := w.Value(State{Vs: 5, Vd: 2})
	require.InDelta(t, 0.2*2, calm-weaving, 1e-9)
}

func TestRewardFavorsProgress(t *testing.T) {
	w := DefaultConfig().Reward
	require.Greater(t, w.Value(State{Vs: 10}), w.Value(State{Vs: 1}))
}
