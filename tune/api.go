package tune

import "fmt"

// Implementation identifies one candidate kernel implementation, or one of
// the sentinel outcomes of a selection. Sentinels occupy slots in the
// selection-count table like any other value, but ImplementationCount marks
// the end of the range and is never a valid choice.
type Implementation int

const (
	// Disabled means autotuning is inactive process-wide; no bandit was consulted.
	Disabled Implementation = iota
	// Fallback means the call site opted out of autotuning (single usable kernel).
	Fallback

	// Real kernel implementations.
	Conv2DNative
	Conv2DNNPack
	Conv2DMKL

	// ImplementationCount sizes the selection-count table. Never a valid choice.
	ImplementationCount
)

var implementationNames = map[Implementation]string{
	Disabled:     "disabled",
	Fallback:     "fallback",
	Conv2DNative: "conv2d_native",
	Conv2DNNPack: "conv2d_nnpack",
	Conv2DMKL:    "conv2d_mkl",
}

// String returns the canonical lowercase name of the implementation.
func (i Implementation) String() string {
	if name, ok := implementationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("implementation(%d)", int(i))
}

// ParseImplementation maps a canonical name back to its Implementation.
// Valid names: disabled, fallback, conv2d_native, conv2d_nnpack, conv2d_mkl.
func ParseImplementation(name string) (Implementation, error) {
	for impl, n := range implementationNames {
		if n == name {
			return impl, nil
		}
	}
	return ImplementationCount, fmt.Errorf("unknown implementation %q", name)
}

// Family selects the bandit algorithm active process-wide.
type Family int

const (
	// FamilyNone disables selection: every call site resolves to Disabled.
	FamilyNone Family = iota
	// FamilyRandomChoice explores uniformly at random among the candidate arms.
	FamilyRandomChoice
	// FamilyGaussian models each arm's cost as a Gaussian and samples posteriors.
	FamilyGaussian
)

// String returns the canonical lowercase name of the family.
func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyRandomChoice:
		return "random"
	case FamilyGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// ParseFamily maps a canonical name back to its Family.
// Valid names: none, random, gaussian.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "none", "":
		return FamilyNone, nil
	case "random":
		return FamilyRandomChoice, nil
	case "gaussian":
		return FamilyGaussian, nil
	default:
		return FamilyNone, fmt.Errorf("unknown bandit family %q; valid families: [none, random, gaussian]", name)
	}
}

// CallSiteKey identifies one distinct shape of a call site. The same
// operation invoked with different relevant parameters yields different keys.
// Keys are opaque to this package; callers typically derive them from the
// operation name and its shape-determining arguments.
type CallSiteKey string

// CostEstimate pairs an implementation with its predicted cost in
// nanoseconds. Estimates seed a bandit's prior once at creation time and are
// never mutated afterward.
type CostEstimate struct {
	Impl Implementation
	Cost float64
}

// CostEstimates is the ordered prior for one call site. Order is preserved so
// that seeded bandit behavior is reproducible across runs.
type CostEstimates []CostEstimate

// Find returns the estimate for impl, or false if impl has no estimate.
func (ce CostEstimates) Find(impl Implementation) (float64, bool) {
	for _, e := range ce {
		if e.Impl == impl {
			return e.Cost, true
		}
	}
	return 0, false
}

// Implementations returns the arms named by the estimates, in order.
func (ce CostEstimates) Implementations() []Implementation {
	impls := make([]Implementation, len(ce))
	for i, e := range ce {
		impls[i] = e.Impl
	}
	return impls
}
