package tune

// Bandit is one online learner bound to a single call-site key. It chooses
// among the arms named in its cost estimates and absorbs observed durations
// to improve future choices. Implementations live in tune/bandits.
type Bandit interface {
	// Choose picks one arm. Must never return ImplementationCount.
	Choose() Implementation
	// Update absorbs one observed duration for a previously chosen arm.
	Update(choice Implementation, deltaNs int64)
	// Summarize logs the bandit's per-arm statistics for diagnostics.
	Summarize(key CallSiteKey)
}

// NewBanditFunc constructs a bandit of the given family from a cost prior
// and a seed. Set by tune/bandits via init(); a blank import of that package
// is enough to wire the real implementations:
//
//	import _ "github.com/czxttkl/autotune/tune/bandits"
var NewBanditFunc func(family Family, costs CostEstimates, seed int64) Bandit
