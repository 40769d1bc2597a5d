package main

import "math"

// RewardWeights scores how desirable a state is. The weights are tuning
// constants, not derived quantities.
type RewardWeights struct {
	Progress       float64 `json:"progress"`
	OnRoadBonus    float64 `json:"on_road_bonus"`
	OffRoadPenalty float64 `json:"off_road_penalty"`
	Lateral        float64 `json:"lateral"`
	Sway           float64 `json:"sway"`
	RoadHalfWidth  float64 `json:"road_half_width"`
}

// Value rewards forward progress and staying centered. Leaving the road
// (|d| >= RoadHalfWidth, bound included) replaces the on-road bonus with the
// off-road penalty; the sway term damps lateral velocity.
func (w RewardWeights) Value(st State) float64 {
	road := w.OffRoadPenalty
	if math.Abs(st.D) < w.RoadHalfWidth {
		road = w.OnRoadBonus
	}
	return st.Vs*w.Progress + road - w.Lateral*math.Abs(st.D) - w.Sway*st.Vd
}
