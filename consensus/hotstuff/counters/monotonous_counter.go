// Package counters provides small concurrency-safe counters used to guard
// one-shot events. It mirrors the
// github.com/onflow/flow-go/engine/consensus/sealing/counters package that
// consensus/hotstuff/timeoutcollector imports for exactly this purpose.
package counters

import "go.uber.org/atomic"

// StrictMonotonousCounter only ever moves forward. Set reports whether the
// supplied value actually advanced the counter, so callers can detect "this
// is the highest value we've ever seen" as a one-time event.
type StrictMonotonousCounter struct {
	value *atomic.Uint64
}

// NewMonotonousCounter creates a counter initialized to init.
func NewMonotonousCounter(init uint64) StrictMonotonousCounter {
	return StrictMonotonousCounter{value: atomic.NewUint64(init)}
}

// Set attempts to advance the counter to newValue. Returns true iff
// newValue was strictly larger than the counter's previous value, in which
// case the update was applied.
func (c StrictMonotonousCounter) Set(newValue uint64) bool {
	for {
		old := c.value.Load()
		if newValue <= old {
			return false
		}
		if c.value.CAS(old, newValue) {
			return true
		}
	}
}

// Value returns the counter's current value.
func (c StrictMonotonousCounter) Value() uint64 {
	return c.value.Load()
}
