// Package trace provides in-memory recording of finished selections for
// offline analysis of bandit behavior.
package trace

import "github.com/czxttkl/autotune/tune"

// SelectionRecord captures a single finished selection.
type SelectionRecord struct {
	Family  tune.Family
	Key     tune.CallSiteKey
	Choice  tune.Implementation
	DeltaNs int64
}
