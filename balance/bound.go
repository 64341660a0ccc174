// Package balance computes the maximum per-district metric a solver run will
// accept before its standard deviation exceeds the target bound.
package balance

import "math"

// TargetStdDevPercent is the target standard deviation, as a percentage of
// the metric sum, that the solver tries to stay within across districts.
const TargetStdDevPercent = 0.5

// MaxAcceptable returns the largest per-district metric value that keeps the
// standard deviation across numDist districts within TargetStdDevPercent of
// sum, given the single largest region's own metric value (a district can
// never be smaller than the biggest region forced into it).
//
// It solves the canonical (1, n−1) split: one district absorbs the
// maximum, the remaining n−1 share the rest evenly. Solving
// 0.5 = 100*stddev/sum for that split reduces to a quadratic in the unknown
// maximum l; this returns the larger of its two roots, or the single
// largest region's metric if that's bigger still.
func MaxAcceptable(sum int, numDist int, largestRegionMetric int) int {
	if numDist <= 1 {
		return sum
	}

	s := float64(sum)
	n := float64(numDist)
	m := s / n

	// (l-m)**2 + (n-1)*((s-l)/(n-1) - m)**2 - n*s**2/40000 = 0, expanded
	// into a*l**2 + b*l + c = 0 the same way the original derivation does for
	// its own split.
	k := 1 / (n - 1)
	a := 1 + k
	b := -2 * k * s
	c := m*m + (k*s-m)*(k*s-m)/k - n*s*s/40000

	d := math.Sqrt(b*b - 4*a*c)
	pos := math.Abs((-b + d) / (2 * a))
	neg := math.Abs((-b - d) / (2 * a))

	bound := math.Max(pos, neg)
	if float64(largestRegionMetric) > bound {
		bound = float64(largestRegionMetric)
	}
	return int(bound)
}
