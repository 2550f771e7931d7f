// Package bandits provides the bandit learning algorithms consumed by the
// tune dispatcher: uniform-random exploration and a Gaussian reward model.
// Importing this package (a blank import suffices) registers both families
// with tune.NewBanditFunc.
package bandits

import "math"

// armStats accumulates observed durations for one arm using Welford's
// algorithm, so mean and variance stay numerically stable over long runs.
type armStats struct {
	count int64
	mean  float64
	m2    float64 // sum of squared differences from the running mean
}

func (a *armStats) observe(x float64) {
	a.count++
	delta := x - a.mean
	a.mean += delta / float64(a.count)
	a.m2 += delta * (x - a.mean)
}

// variance returns the sample variance, or NaN with fewer than two samples.
func (a *armStats) variance() float64 {
	if a.count < 2 {
		return math.NaN()
	}
	return a.m2 / float64(a.count-1)
}
