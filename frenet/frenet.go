// Package frenet projects positions and velocities onto a road centerline,
// yielding longitudinal progress along the line and signed lateral offset
// from it (negative left of the direction of travel, positive right).
package frenet

import (
	"errors"
	"fmt"
	"math"
)

// Projection is a piecewise-linear centerline built from ordered waypoints.
// It is owned by a single control cycle: waypoints change every cycle, so a
// fresh projection must be built each time.
type Projection struct {
	xs, ys []float64
	arc    []float64 // cumulative centerline length at each vertex
}

// Build constructs a projection from ordered waypoint coordinates.
// Consecutive duplicate points are skipped; at least two distinct points
// must remain.
func Build(xs, ys []float64) (*Projection, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("waypoint count mismatch: %d x vs %d y", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, errors.New("need at least 2 waypoints")
	}

	p := &Projection{
		xs:  make([]float64, 0, len(xs)),
		ys:  make([]float64, 0, len(ys)),
		arc: make([]float64, 0, len(xs)),
	}
	for i := range xs {
		n := len(p.xs)
		if n > 0 && xs[i] == p.xs[n-1] && ys[i] == p.ys[n-1] {
			continue
		}
		length := 0.0
		if n > 0 {
			length = p.arc[n-1] + math.Hypot(xs[i]-p.xs[n-1], ys[i]-p.ys[n-1])
		}
		p.xs = append(p.xs, xs[i])
		p.ys = append(p.ys, ys[i])
		p.arc = append(p.arc, length)
	}
	if len(p.xs) < 2 {
		return nil, errors.New("need at least 2 distinct waypoints")
	}
	return p, nil
}

// Project maps a position and velocity onto the centerline: s is arc length
// along the line to the closest point, d the signed lateral offset, and
// vs/vd the velocity decomposed along the local tangent and right normal.
// Deterministic for a fixed waypoint list; positions beyond either end clamp
// to the nearest endpoint's segment.
func (p *Projection) Project(x, y, vx, vy float64) (s, d, vs, vd float64) {
	bestDist := math.Inf(1)
	var bestSeg int
	var bestT float64

	for i := 0; i+1 < len(p.xs); i++ {
		dx := p.xs[i+1] - p.xs[i]
		dy := p.ys[i+1] - p.ys[i]
		t := ((x-p.xs[i])*dx + (y-p.ys[i])*dy) / (dx*dx + dy*dy)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		px := p.xs[i] + t*dx
		py := p.ys[i] + t*dy
		dist := (x-px)*(x-px) + (y-py)*(y-py)
		if dist < bestDist {
			bestDist = dist
			bestSeg = i
			bestT = t
		}
	}

	dx := p.xs[bestSeg+1] - p.xs[bestSeg]
	dy := p.ys[bestSeg+1] - p.ys[bestSeg]
	length := math.Hypot(dx, dy)
	tx, ty := dx/length, dy/length
	// right normal: positive d means right of the direction of travel
	nx, ny := ty, -tx

	px := p.xs[bestSeg] + bestT*dx
	py := p.ys[bestSeg] + bestT*dy

	s = p.arc[bestSeg] + bestT*length
	d = (x-px)*nx + (y-py)*ny
	vs = vx*tx + vy*ty
	vd = vx*nx + vy*ny
	return s, d, vs, vd
}
