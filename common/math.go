package common

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sign returns 1 for v >= 0 and -1 otherwise.
func Sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// SmoothApproach eases a value toward target while following a moving
// target. past is the previous value, pastTarget the previous frame's target.
func SmoothApproach(past, pastTarget, target, speed, dt float64) float64 {
	t := dt * speed
	if t <= 0 {
		return past
	}
	v := (target - pastTarget) / t
	f := past - pastTarget + v
	return target - v + f*math.Exp(-t)
}

// Centroid returns the arithmetic mean of points, or the zero vector when
// points is empty.
func Centroid(points []r3.Vec) r3.Vec {
	if len(points) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(points)), sum)
}

// WeightedCentroid weights each point by the matching entry of weights.
// Missing weights count as 1. A non-positive total weight falls back to
// Centroid.
func WeightedCentroid(points []r3.Vec, weights []float64) r3.Vec {
	return weighted(points, weights, func(w float64) float64 { return w })
}

// LimitedCentroid is WeightedCentroid with every weight clamped into [0,1],
// so no single point can pull harder than an unweighted one.
func LimitedCentroid(points []r3.Vec, weights []float64) r3.Vec {
	return weighted(points, weights, func(w float64) float64 {
		return math.Max(0, math.Min(1, w))
	})
}

func weighted(points []r3.Vec, weights []float64, adjust func(float64) float64) r3.Vec {
	if len(points) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	total := 0.0
	for i, p := range points {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		w = adjust(w)
		sum = r3.Add(sum, r3.Scale(w, p))
		total += w
	}
	if total <= 0 {
		return Centroid(points)
	}
	return r3.Scale(1/total, sum)
}
