package tune

import (
	"fmt"
	"sync"
	"time"
)

// Dispatcher is the process-wide coordination point for autotuned dispatch.
// It holds the active bandit family, one BanditStore per real family, and a
// fixed-size table counting how often each implementation has been chosen
// across all families. State persists for the lifetime of the process until
// an explicit Reset (intended for quiescent-state use, e.g. between
// benchmark phases).
//
// Most programs use the shared instance returned by Global; tests construct
// their own with NewDispatcher so state never leaks between cases.
type Dispatcher struct {
	mu           sync.Mutex
	active       Family
	sink         Sink
	chosenCounts [ImplementationCount]uint64

	// stores is populated once at construction and never mutated, so reads
	// need no locking. Each store serializes its own map internally.
	stores map[Family]*BanditStore

	now func() time.Time
}

// NewDispatcher creates a Dispatcher with no active family, a NopSink, and
// the real monotonic clock.
func NewDispatcher() *Dispatcher {
	return NewDispatcherWithClock(time.Now)
}

// NewDispatcherWithClock creates a Dispatcher reading time from now. The
// benchmark harness substitutes a virtual clock here so synthetic kernel
// latencies flow through the same timing path real call sites use.
func NewDispatcherWithClock(now func() time.Time) *Dispatcher {
	return &Dispatcher{
		sink: NopSink{},
		stores: map[Family]*BanditStore{
			FamilyRandomChoice: NewBanditStore(FamilyRandomChoice),
			FamilyGaussian:     NewBanditStore(FamilyGaussian),
		},
		now: now,
	}
}

var global = NewDispatcher()

// Global returns the shared process-wide Dispatcher.
func Global() *Dispatcher {
	return global
}

// ActiveFamily returns the currently active bandit family.
func (d *Dispatcher) ActiveFamily() Family {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// SetActiveFamily switches the active family. Existing per-family stores are
// not cleared; they persist, inert, until Reset.
func (d *Dispatcher) SetActiveFamily(f Family) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = f
}

// SetSink installs the telemetry sink receiving finished selections.
func (d *Dispatcher) SetSink(sink Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sink == nil {
		sink = NopSink{}
	}
	d.sink = sink
}

// Sink returns the installed telemetry sink.
func (d *Dispatcher) Sink() Sink {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sink
}

// store returns the BanditStore for a real family. An unknown or None family
// is an internal invariant violation and panics.
func (d *Dispatcher) store(f Family) *BanditStore {
	s, ok := d.stores[f]
	if !ok {
		panic(fmt.Sprintf("tune: could not select bandit family %s", f))
	}
	return s
}

// Choose asks family's bandit for key (creating it from costFn on first
// sight) to pick an implementation, and bumps that implementation's global
// selection count. The returned choice is never ImplementationCount.
func (d *Dispatcher) Choose(f Family, key CallSiteKey, costFn func() CostEstimates) Implementation {
	choice := d.store(f).Choose(key, costFn)
	if choice >= ImplementationCount || choice < 0 {
		panic(fmt.Sprintf("tune: %s bandit for key %q chose out-of-range implementation %d", f, key, int(choice)))
	}

	d.mu.Lock()
	d.chosenCounts[choice]++
	d.mu.Unlock()
	return choice
}

// Update forwards one observed duration to the bandit that produced choice.
// Updating a key never passed to Choose is a programming error and panics.
func (d *Dispatcher) Update(f Family, key CallSiteKey, choice Implementation, deltaNs int64) {
	d.store(f).Update(key, choice, deltaNs)
}

// TimesChosen returns how many times choice has been returned by Choose
// across all families since the last Reset. Diagnostic only; never consulted
// for decisions.
func (d *Dispatcher) TimesChosen(choice Implementation) uint64 {
	if choice >= ImplementationCount || choice < 0 {
		panic(fmt.Sprintf("tune: TimesChosen called with out-of-range implementation %d", int(choice)))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.chosenCounts[choice]
}

// Summarize asks the active family's store to summarize every bandit.
// Summarizing is only meaningful for the live family; with no active family
// this is a no-op.
func (d *Dispatcher) Summarize() {
	f := d.ActiveFamily()
	if f == FamilyNone {
		return
	}
	d.store(f).SummarizeAll()
}

// Reset clears both families' stores, deactivates selection, and zeroes the
// selection-count table. Not safe to call concurrently with in-flight
// Choose/Update calls.
func (d *Dispatcher) Reset() {
	for _, s := range d.stores {
		s.Reset()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.active = FamilyNone
	for i := range d.chosenCounts {
		d.chosenCounts[i] = 0
	}
}
