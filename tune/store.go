package tune

import (
	"fmt"
	"sync"
)

// BanditStore owns the bandits of one family, keyed by call-site identity.
// Bandits are created lazily on first sight of a key and live until Reset.
//
// All operations, including the bandit's own Choose and Update, run behind
// the store mutex: bandit implementations need no synchronization of their
// own, and under concurrent first-use of the same key exactly one bandit is
// created and all callers observe the same instance.
type BanditStore struct {
	mu          sync.Mutex
	family      Family
	nextSeed    int64
	orderedKeys []CallSiteKey // first-seen order, for deterministic reporting
	bandits     map[CallSiteKey]Bandit
}

// NewBanditStore creates an empty store for the given family.
func NewBanditStore(family Family) *BanditStore {
	return &BanditStore{
		family:  family,
		bandits: make(map[CallSiteKey]Bandit),
	}
}

// getOrCreateLocked is the insert-or-fetch path. costFn is invoked only on
// the insert path, so cost estimation is skipped entirely for keys that
// already have a bandit. Each new bandit receives the next sequential seed.
func (s *BanditStore) getOrCreateLocked(key CallSiteKey, costFn func() CostEstimates) Bandit {
	if b, ok := s.bandits[key]; ok {
		return b
	}

	if NewBanditFunc == nil {
		panic("tune: no bandit families registered; blank-import tune/bandits")
	}
	s.orderedKeys = append(s.orderedKeys, key) // preserve order for debugging
	b := NewBanditFunc(s.family, costFn(), s.nextSeed)
	s.nextSeed++
	s.bandits[key] = b
	return b
}

func (s *BanditStore) getLocked(key CallSiteKey) Bandit {
	b, ok := s.bandits[key]
	if !ok {
		panic(fmt.Sprintf("tune: no %s bandit exists for key %q", s.family, key))
	}
	return b
}

// GetOrCreate returns the bandit for key, creating it on first sight.
func (s *BanditStore) GetOrCreate(key CallSiteKey, costFn func() CostEstimates) Bandit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key, costFn)
}

// Get returns the bandit for an already-created key. Calling Get for a key
// never passed to GetOrCreate is a programming error and panics.
func (s *BanditStore) Get(key CallSiteKey) Bandit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key)
}

// Choose asks key's bandit (created from costFn on first sight) to pick an
// arm, under the store lock.
func (s *BanditStore) Choose(key CallSiteKey, costFn func() CostEstimates) Implementation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key, costFn).Choose()
}

// Update forwards one observed duration to key's bandit, under the store
// lock. Updating a key never chosen is a programming error and panics.
func (s *BanditStore) Update(key CallSiteKey, choice Implementation, deltaNs int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(key).Update(choice, deltaNs)
}

// Len returns the number of bandits created since the last Reset.
func (s *BanditStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bandits)
}

// SummarizeAll asks every bandit to summarize itself, in first-seen key
// order so diagnostic output is reproducible across runs.
func (s *BanditStore) SummarizeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.orderedKeys {
		s.bandits[k].Summarize(k)
	}
}

// Reset clears all bandits, the key order, and the seed counter.
func (s *BanditStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeed = 0
	s.orderedKeys = nil
	s.bandits = make(map[CallSiteKey]Bandit)
}
