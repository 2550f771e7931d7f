// Package tune provides the core runtime dispatcher for online kernel
// autotuning: each distinct call-site shape is treated as an independent
// multi-armed bandit whose arms are the candidate kernel implementations.
//
// # Reading Guide
//
// Start with these three files to understand the dispatch kernel:
//   - api.go: Implementation and Family enums, call-site keys, cost estimates
//   - dispatch.go: the Dispatcher facade routing choose/update/summarize calls
//   - selection.go: the scoped per-invocation Selection handle and its timer
//
// # Architecture
//
// The tune package defines interfaces and the dispatch machinery; learning
// algorithms and telemetry backends live in sub-packages:
//   - tune/bandits/: bandit implementations (uniform random, Gaussian reward model)
//   - tune/trace/: in-memory selection recording and summaries
//   - tune/metrics/: Prometheus-backed selection counters and duration histograms
//
// Sub-packages register their implementations via init() functions that set
// package-level factory variables (NewBanditFunc).
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Bandit: choose an implementation, absorb an observed duration
//   - EntryPoint: describe one call site (key, candidates, cost priors)
//   - Sink: receive telemetry records for every finished selection
package tune
