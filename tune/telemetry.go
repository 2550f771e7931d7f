package tune

// Sink receives telemetry for every finished selection. Implementations live
// in tune/trace (in-memory recording) and tune/metrics (Prometheus).
type Sink interface {
	// RegisterKey associates a human-readable label with a key. repr is only
	// invoked for keys not seen before; repeated registration is harmless.
	RegisterKey(key CallSiteKey, repr func() string)
	// Record appends one observation.
	Record(family Family, key CallSiteKey, choice Implementation, deltaNs int64)
}

// NopSink discards all telemetry. It is the Dispatcher default.
type NopSink struct{}

func (NopSink) RegisterKey(CallSiteKey, func() string) {}

func (NopSink) Record(Family, CallSiteKey, Implementation, int64) {}
