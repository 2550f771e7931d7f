package tune

import "time"

// EntryPoint describes one call site to the dispatcher. Implementations() may
// be empty only when Fallback() is true. Repr() is only invoked the first
// time a key reaches the telemetry sink, so it may be arbitrarily expensive.
type EntryPoint interface {
	Key() CallSiteKey
	Fallback() bool
	Implementations() []Implementation
	Costs() CostEstimates
	Repr() string
}

// Selection ties a single invocation to a chosen implementation. It is
// created at call-site entry, consulted for the choice, and finished exactly
// once at call-site exit. When a real choice is made the handle arms a
// monotonic timer at construction and reports the elapsed duration back to
// the dispatcher on Finish.
//
// Selections are stack-scoped and carry no state beyond their own
// invocation; they are not safe for concurrent use.
type Selection struct {
	dispatcher *Dispatcher
	entry      EntryPoint
	family     Family
	choice     Implementation
	timed      bool
	finished   bool
	start      time.Time
}

// NewSelection decides an implementation for one invocation of entry.
//
// If no family is active the decision is Disabled; if the call site declares
// a fallback the decision is Fallback; neither outcome arms the timer. An
// empty implementation list with autotuning enabled and no fallback declared
// is a contract violation and panics.
func NewSelection(d *Dispatcher, entry EntryPoint) *Selection {
	s := &Selection{dispatcher: d, entry: entry}
	s.family = d.ActiveFamily()

	if s.family == FamilyNone {
		s.choice = Disabled
		return s
	}
	if entry.Fallback() {
		s.choice = Fallback
		return s
	}
	if len(entry.Implementations()) == 0 {
		panic("tune: autotuning is enabled and the call site did not declare a fallback, " +
			"but no implementations are available")
	}

	s.choice = d.Choose(s.family, entry.Key(), entry.Costs)
	s.timed = true
	s.start = d.now()
	return s
}

// Choice returns the decision made at construction. Valid in any state.
func (s *Selection) Choice() Implementation {
	return s.choice
}

// Finished reports whether Finish has been called on a timed handle.
func (s *Selection) Finished() bool {
	return s.finished
}

// Finish stops the timer, reports the elapsed duration to the dispatcher,
// and emits a telemetry record. A no-op for Disabled and Fallback decisions.
// Calling Finish twice on the same timed handle is a contract violation and
// panics; skipping it entirely drops the observation silently (lost learning
// signal, no crash).
func (s *Selection) Finish() {
	if !s.timed {
		return
	}
	deltaNs := s.dispatcher.now().Sub(s.start).Nanoseconds()
	if s.finished {
		panic("tune: Finish() called twice on the same selection")
	}
	s.finished = true

	key := s.entry.Key()
	s.dispatcher.Update(s.family, key, s.choice, deltaNs)

	sink := s.dispatcher.Sink()
	sink.RegisterKey(key, s.entry.Repr)
	sink.Record(s.family, key, s.choice, deltaNs)
}
