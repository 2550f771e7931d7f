package trace

import (
	"gonum.org/v1/gonum/stat"

	"github.com/czxttkl/autotune/tune"
)

// KeyStats aggregates the selections observed for one call-site key.
type KeyStats struct {
	Repr        string
	Count       int
	MeanDeltaNs float64
	StdDeltaNs  float64
	MaxDeltaNs  int64
	ChoiceCount map[tune.Implementation]int
}

// Summary aggregates statistics from a MemorySink.
type Summary struct {
	TotalSelections int
	UniqueKeys      int
	ChoiceCount     map[tune.Implementation]int
	PerKey          map[tune.CallSiteKey]*KeyStats
	KeyOrder        []tune.CallSiteKey // first-registered order, for deterministic reporting
}

// Summarize computes aggregate statistics from a sink.
// Safe for nil sinks (returns zero-value fields).
func Summarize(ms *MemorySink) *Summary {
	summary := &Summary{
		ChoiceCount: make(map[tune.Implementation]int),
		PerKey:      make(map[tune.CallSiteKey]*KeyStats),
	}
	if ms == nil {
		return summary
	}

	records := ms.Records()
	summary.TotalSelections = len(records)
	summary.KeyOrder = ms.Keys()

	deltas := make(map[tune.CallSiteKey][]float64)
	for _, rec := range records {
		summary.ChoiceCount[rec.Choice]++

		ks, ok := summary.PerKey[rec.Key]
		if !ok {
			ks = &KeyStats{ChoiceCount: make(map[tune.Implementation]int)}
			if repr, found := ms.KeyRepr(rec.Key); found {
				ks.Repr = repr
			}
			summary.PerKey[rec.Key] = ks
		}
		ks.Count++
		ks.ChoiceCount[rec.Choice]++
		if rec.DeltaNs > ks.MaxDeltaNs {
			ks.MaxDeltaNs = rec.DeltaNs
		}
		deltas[rec.Key] = append(deltas[rec.Key], float64(rec.DeltaNs))
	}

	for key, xs := range deltas {
		ks := summary.PerKey[key]
		ks.MeanDeltaNs = stat.Mean(xs, nil)
		if len(xs) > 1 {
			ks.StdDeltaNs = stat.StdDev(xs, nil)
		}
	}

	summary.UniqueKeys = len(summary.PerKey)
	return summary
}
