package optimize

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Kind tags the distribution variant a policy may emit.
type Kind int

const (
	// Uniform draws evenly from [Low, High].
	Uniform Kind = iota
)

// Distribution describes an action band proposed by a policy. Policies only
// describe the band; the solver owns the sampling contract.
type Distribution struct {
	Kind Kind
	Low  float64
	High float64
}

// UniformAround builds a uniform band of half-width band centered on center.
func UniformAround(center, band float64) Distribution {
	return Distribution{Kind: Uniform, Low: center - band, High: center + band}
}

// Mean is the midpoint of the band, used to seed the baseline rollout.
func (d Distribution) Mean() float64 {
	return (d.Low + d.High) / 2
}

// Sample draws one value from the distribution using src.
func (d Distribution) Sample(src rand.Source) float64 {
	switch d.Kind {
	case Uniform:
		return distuv.Uniform{Min: d.Low, Max: d.High, Src: src}.Rand()
	default:
		return d.Mean()
	}
}
