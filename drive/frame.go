package main

import "math"

// toVehicleFrame converts an absolute-frame point into the frame of a car at
// (carX, carY) with heading psi: x forward along the heading, y to its left.
// A point at the car's own position maps to the origin for any heading.
func toVehicleFrame(x, y, carX, carY, psi float64) (float64, float64) {
	dist := math.Hypot(x-carX, y-carY)
	bearing := math.Atan2(y-carY, x-carX)
	rel := bearing - psi
	return dist * math.Cos(rel), dist * math.Sin(rel)
}

// waypointsToVehicleFrame converts a waypoint list element-wise.
func waypointsToVehicleFrame(xs, ys []float64, carX, carY, psi float64) ([]float64, []float64) {
	outX := make([]float64, len(xs))
	outY := make([]float64, len(ys))
	for i := range xs {
		outX[i], outY[i] = toVehicleFrame(xs[i], ys[i], carX, carY, psi)
	}
	return outX, outY
}
