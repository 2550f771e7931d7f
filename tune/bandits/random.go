package bandits

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/czxttkl/autotune/tune"
)

// RandomChoice explores uniformly at random among the arms named in its cost
// prior. It learns nothing from updates beyond bookkeeping; it exists as the
// exploration baseline the Gaussian family is measured against.
//
// Not safe for concurrent use; the owning BanditStore serializes access.
type RandomChoice struct {
	arms  []tune.Implementation // in cost-estimate order, for seeded reproducibility
	stats map[tune.Implementation]*armStats
	rng   *rand.Rand
}

// NewRandomChoice creates a RandomChoice bandit over the arms named in costs.
func NewRandomChoice(costs tune.CostEstimates, seed int64) *RandomChoice {
	b := &RandomChoice{
		arms:  costs.Implementations(),
		stats: make(map[tune.Implementation]*armStats, len(costs)),
		rng:   rand.New(rand.NewSource(seed)),
	}
	for _, impl := range b.arms {
		b.stats[impl] = &armStats{}
	}
	return b
}

// Choose implements tune.Bandit for RandomChoice.
func (b *RandomChoice) Choose() tune.Implementation {
	return b.arms[b.rng.Intn(len(b.arms))]
}

// Update implements tune.Bandit for RandomChoice. Updating an arm that is
// not part of this bandit's prior is a programming error and panics.
func (b *RandomChoice) Update(choice tune.Implementation, deltaNs int64) {
	st, ok := b.stats[choice]
	if !ok {
		panic(fmt.Sprintf("bandits: random bandit has no arm %s", choice))
	}
	st.observe(float64(deltaNs))
}

// Summarize implements tune.Bandit for RandomChoice.
func (b *RandomChoice) Summarize(key tune.CallSiteKey) {
	for _, impl := range b.arms {
		st := b.stats[impl]
		logrus.Infof("[random] key=%s arm=%s count=%d mean_ns=%.1f",
			key, impl, st.count, st.mean)
	}
}
