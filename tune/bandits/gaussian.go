package bandits

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/czxttkl/autotune/tune"
)

// priorWeight is the pseudo-observation count assigned to the cost prior.
// One pseudo-observation keeps a bad prior from dominating once real
// measurements arrive.
const priorWeight = 1.0

// priorRelSigma is the assumed relative standard deviation of the cost
// prior. Cost estimates are rough, so the prior is wide.
const priorRelSigma = 0.25

// gaussianArm models one arm's cost as a Gaussian with unknown mean.
type gaussianArm struct {
	priorMean float64
	armStats
}

// posterior returns the current estimate of the arm's mean cost and the
// standard deviation of that estimate. The prior counts as priorWeight
// pseudo-observations at priorMean; uncertainty shrinks as real
// observations accumulate.
func (a *gaussianArm) posterior() (mu, sigma float64) {
	n := float64(a.count)
	mu = (priorWeight*a.priorMean + n*a.mean) / (priorWeight + n)

	varEst := a.variance()
	if math.IsNaN(varEst) || varEst == 0 {
		s := a.priorMean * priorRelSigma
		varEst = s * s
	}
	sigma = math.Sqrt(varEst / (priorWeight + n))
	return mu, sigma
}

// Gaussian chooses arms by Thompson sampling over per-arm Gaussian cost
// posteriors: draw one cost from each arm's posterior and pick the minimum.
// Arms with little data have wide posteriors and keep getting explored; arms
// with consistently low observed cost win more and more draws.
//
// Not safe for concurrent use; the owning BanditStore serializes access.
type Gaussian struct {
	order []tune.Implementation
	arms  map[tune.Implementation]*gaussianArm
	src   exprand.Source
}

// NewGaussian creates a Gaussian bandit with one arm per cost estimate. The
// estimate seeds each arm's prior mean and is never mutated afterward.
func NewGaussian(costs tune.CostEstimates, seed int64) *Gaussian {
	b := &Gaussian{
		order: costs.Implementations(),
		arms:  make(map[tune.Implementation]*gaussianArm, len(costs)),
		src:   exprand.NewSource(uint64(seed)),
	}
	for _, e := range costs {
		b.arms[e.Impl] = &gaussianArm{priorMean: e.Cost}
	}
	return b
}

// Choose implements tune.Bandit for Gaussian.
func (b *Gaussian) Choose() tune.Implementation {
	best := b.order[0]
	bestDraw := math.Inf(1)
	for _, impl := range b.order {
		mu, sigma := b.arms[impl].posterior()
		draw := distuv.Normal{Mu: mu, Sigma: sigma, Src: b.src}.Rand()
		if draw < bestDraw {
			bestDraw = draw
			best = impl
		}
	}
	return best
}

// Update implements tune.Bandit for Gaussian. Updating an arm that is not
// part of this bandit's prior is a programming error and panics.
func (b *Gaussian) Update(choice tune.Implementation, deltaNs int64) {
	arm, ok := b.arms[choice]
	if !ok {
		panic(fmt.Sprintf("bandits: gaussian bandit has no arm %s", choice))
	}
	arm.observe(float64(deltaNs))
}

// Summarize implements tune.Bandit for Gaussian.
func (b *Gaussian) Summarize(key tune.CallSiteKey) {
	for _, impl := range b.order {
		arm := b.arms[impl]
		mu, sigma := arm.posterior()
		logrus.Infof("[gaussian] key=%s arm=%s count=%d prior_ns=%.1f posterior_ns=%.1f±%.1f",
			key, impl, arm.count, arm.priorMean, mu, sigma)
	}
}
