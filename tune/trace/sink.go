package trace

import (
	"sync"

	"github.com/czxttkl/autotune/tune"
)

// MemorySink records every finished selection in memory, plus one
// human-readable label per call-site key. It implements tune.Sink.
// Safe for concurrent use.
type MemorySink struct {
	mu          sync.Mutex
	reprs       map[tune.CallSiteKey]string
	orderedKeys []tune.CallSiteKey // first-registered order
	records     []SelectionRecord
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		reprs: make(map[tune.CallSiteKey]string),
	}
}

// RegisterKey implements tune.Sink. repr is invoked only the first time a
// key is registered; later registrations for the same key are no-ops.
func (ms *MemorySink) RegisterKey(key tune.CallSiteKey, repr func() string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.reprs[key]; ok {
		return
	}
	ms.reprs[key] = repr()
	ms.orderedKeys = append(ms.orderedKeys, key)
}

// Record implements tune.Sink.
func (ms *MemorySink) Record(family tune.Family, key tune.CallSiteKey, choice tune.Implementation, deltaNs int64) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.records = append(ms.records, SelectionRecord{
		Family:  family,
		Key:     key,
		Choice:  choice,
		DeltaNs: deltaNs,
	})
}

// KeyRepr returns the registered label for key, if any.
func (ms *MemorySink) KeyRepr(key tune.CallSiteKey) (string, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	repr, ok := ms.reprs[key]
	return repr, ok
}

// Keys returns all registered keys in first-registered order.
func (ms *MemorySink) Keys() []tune.CallSiteKey {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]tune.CallSiteKey, len(ms.orderedKeys))
	copy(out, ms.orderedKeys)
	return out
}

// Records returns a copy of all recorded selections in arrival order.
func (ms *MemorySink) Records() []SelectionRecord {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]SelectionRecord, len(ms.records))
	copy(out, ms.records)
	return out
}
