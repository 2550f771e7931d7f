package bench

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/czxttkl/autotune/tune"
)

// Result aggregates one benchmark run.
type Result struct {
	Invocations int
	TotalNs     float64 // realized latency across all invocations
	OracleNs    float64 // latency of always choosing each kernel's best arm
	ChoiceCount map[tune.Implementation]int
}

// RegretNs returns realized minus oracle latency. Lower is better; a bandit
// that converges on the fastest arm per kernel drives per-invocation regret
// toward zero.
func (r Result) RegretNs() float64 {
	return r.TotalNs - r.OracleNs
}

// Runner replays synthetic kernel invocations through Selection handles on a
// virtual clock, so sampled latencies flow through the same timing path real
// call sites use without sleeping.
type Runner struct {
	dispatcher *tune.Dispatcher
	kernels    []*Kernel
	rngs       *kernelRNGs
	nowNs      int64 // virtual clock, advanced by sampled latencies
}

// NewRunner creates a Runner driving the given kernels under family,
// reporting telemetry to sink (nil for none).
func NewRunner(family tune.Family, seed int64, kernels []*Kernel, sink tune.Sink) *Runner {
	r := &Runner{
		kernels: kernels,
		rngs:    newKernelRNGs(seed),
	}
	r.dispatcher = tune.NewDispatcherWithClock(func() time.Time {
		return time.Unix(0, r.nowNs)
	})
	r.dispatcher.SetActiveFamily(family)
	if sink != nil {
		r.dispatcher.SetSink(sink)
	}
	return r
}

// Dispatcher returns the runner's dispatcher, for post-run summaries.
func (r *Runner) Dispatcher() *tune.Dispatcher {
	return r.dispatcher
}

// Run replays invocations across the kernels round-robin and returns the
// aggregated result.
func (r *Runner) Run(invocations int) Result {
	result := Result{
		Invocations: invocations,
		ChoiceCount: make(map[tune.Implementation]int),
	}

	for i := 0; i < invocations; i++ {
		k := r.kernels[i%len(r.kernels)]
		rng := r.rngs.forKernel(k.Name)

		sel := tune.NewSelection(r.dispatcher, k)
		choice := sel.Choice()
		result.ChoiceCount[choice]++

		// Simulate the chosen kernel. Disabled and Fallback outcomes run the
		// call site's first (default) arm when one exists.
		sampler := k.Latency[choice]
		if sampler == nil && len(k.Prior) > 0 {
			sampler = k.Latency[k.Prior[0].Impl]
		}
		if sampler != nil {
			deltaNs := sampler.Sample(rng)
			r.nowNs += int64(deltaNs)
			result.TotalNs += deltaNs
			result.OracleNs += k.BestMeanNs()
		}

		sel.Finish()
	}

	logrus.Debugf("bench: %d invocations, regret=%.0fns", invocations, result.RegretNs())
	return result
}
