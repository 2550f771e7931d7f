// Package bench drives the autotune dispatcher with synthetic kernels whose
// true latency distributions are known, so bandit behavior can be measured
// against an oracle that always picks the best implementation.
package bench

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/czxttkl/autotune/tune"
)

// LatencySampler generates synthetic kernel latencies in nanoseconds.
type LatencySampler interface {
	// Sample returns a positive latency (>= 1ns).
	Sample(rng *rand.Rand) float64
	// Mean returns the distribution's true mean, for oracle comparison.
	Mean() float64
}

// GaussianLatency produces clamped Gaussian latencies.
type GaussianLatency struct {
	MeanNs   float64
	StdDevNs float64
}

func (g GaussianLatency) Sample(rng *rand.Rand) float64 {
	val := rng.NormFloat64()*g.StdDevNs + g.MeanNs
	return math.Max(1, val)
}

func (g GaussianLatency) Mean() float64 { return g.MeanNs }

// ExponentialLatency produces exponentially-distributed latencies.
type ExponentialLatency struct {
	MeanNs float64
}

func (e ExponentialLatency) Sample(rng *rand.Rand) float64 {
	return math.Max(1, rng.ExpFloat64()*e.MeanNs)
}

func (e ExponentialLatency) Mean() float64 { return e.MeanNs }

// Kernel is one synthetic call-site shape. It implements tune.EntryPoint:
// the prior plays the role of the call site's cost-estimation routine, and
// Latency holds the true per-implementation distributions the estimates may
// or may not agree with.
type Kernel struct {
	Name         string
	FallbackOnly bool
	Prior        tune.CostEstimates
	Latency      map[tune.Implementation]LatencySampler
}

// Key implements tune.EntryPoint for Kernel.
func (k *Kernel) Key() tune.CallSiteKey {
	return tune.CallSiteKey(k.Name)
}

// Fallback implements tune.EntryPoint for Kernel.
func (k *Kernel) Fallback() bool {
	return k.FallbackOnly
}

// Implementations implements tune.EntryPoint for Kernel.
func (k *Kernel) Implementations() []tune.Implementation {
	if k.FallbackOnly {
		return nil
	}
	return k.Prior.Implementations()
}

// Costs implements tune.EntryPoint for Kernel.
func (k *Kernel) Costs() tune.CostEstimates {
	return k.Prior
}

// Repr implements tune.EntryPoint for Kernel.
func (k *Kernel) Repr() string {
	return fmt.Sprintf("kernel %s (%d arms)", k.Name, len(k.Prior))
}

// BestMeanNs returns the true mean latency of the kernel's best
// implementation, the per-invocation cost an oracle would pay.
func (k *Kernel) BestMeanNs() float64 {
	best := math.Inf(1)
	for _, sampler := range k.Latency {
		if m := sampler.Mean(); m < best {
			best = m
		}
	}
	return best
}
