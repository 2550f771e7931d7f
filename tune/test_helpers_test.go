package tune

import (
	"sync"
	"testing"
)

// stubBandit records its construction parameters and every update, and
// returns a fixed choice. It stands in for the real learners in tune/bandits
// so the dispatch machinery is tested in isolation.
type stubBandit struct {
	seed   int64
	costs  CostEstimates
	choice Implementation

	mu         sync.Mutex
	updates    []stubUpdate
	summarized []CallSiteKey
}

type stubUpdate struct {
	choice  Implementation
	deltaNs int64
}

func (b *stubBandit) Choose() Implementation {
	return b.choice
}

func (b *stubBandit) Update(choice Implementation, deltaNs int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, stubUpdate{choice, deltaNs})
}

func (b *stubBandit) Summarize(key CallSiteKey) {
	b.summarized = append(b.summarized, key)
}

// stubFactory installs a NewBanditFunc producing stubBandits that always
// choose fixedChoice, restoring the previous factory when the test ends.
// It returns the list of created bandits (appended in creation order).
func stubFactory(t *testing.T, fixedChoice Implementation) *[]*stubBandit {
	t.Helper()

	var mu sync.Mutex
	created := &[]*stubBandit{}
	prev := NewBanditFunc
	NewBanditFunc = func(family Family, costs CostEstimates, seed int64) Bandit {
		b := &stubBandit{seed: seed, costs: costs, choice: fixedChoice}
		mu.Lock()
		*created = append(*created, b)
		mu.Unlock()
		return b
	}
	t.Cleanup(func() { NewBanditFunc = prev })
	return created
}

// testCosts is a convenient two-arm prior.
func testCosts() CostEstimates {
	return CostEstimates{
		{Impl: Conv2DNative, Cost: 10},
		{Impl: Conv2DMKL, Cost: 20},
	}
}
