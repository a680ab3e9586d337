// Package pacemaker implements the round-duration policy (spec.md §4.1,
// component C1): a mapping from "rounds since the last commit" to a round
// timeout. Grounded on the original Rust RoundTimeInterval/ExponentialTimeInterval
// in round_state.rs, translated to Go's fail-fast-via-error constructor
// idiom instead of Rust's assert! panics.
package pacemaker

import (
	"fmt"
	"math"
	"time"
)

// RoundTimeInterval determines the round duration given the index of the
// round after the highest round to commit a block. Round indices start at
// 0: index 0 is the first round after the round that led to the highest
// committed round.
type RoundTimeInterval interface {
	// GetRoundDuration returns the duration to use for the round at
	// roundIndexAfterCommittedRound.
	GetRoundDuration(roundIndexAfterCommittedRound int) time.Duration
}

// ExponentialTimeInterval grows the round duration exponentially:
// duration = ceil(base * exponentBase^min(index, maxExponent)).
type ExponentialTimeInterval struct {
	baseMS       uint64
	exponentBase float64
	maxExponent  int
}

var _ RoundTimeInterval = (*ExponentialTimeInterval)(nil)

// NewExponentialTimeInterval validates its arguments and returns a policy
// that grows the round timeout exponentially up to maxExponent, then caps.
// maxExponent must be < 32 and exponentBase^maxExponent must fit an
// unsigned 32-bit multiplier, so the resulting millisecond duration can
// never overflow. These are the same bounds the original Rust
// constructor enforces with assert!; here they're reported as an error
// instead of a panic, consistent with this module's fail-fast-at-
// construction error policy (spec.md §7).
func NewExponentialTimeInterval(base time.Duration, exponentBase float64, maxExponent int) (*ExponentialTimeInterval, error) {
	if maxExponent >= 32 {
		return nil, fmt.Errorf("max_exponent for RoundTimeInterval should be <32, got %d", maxExponent)
	}
	if multiplier := math.Ceil(math.Pow(exponentBase, float64(maxExponent))); multiplier >= float64(math.MaxUint32) {
		return nil, fmt.Errorf("maximum interval multiplier %v should be less than MaxUint32", multiplier)
	}
	return &ExponentialTimeInterval{
		baseMS:       uint64(base.Milliseconds()),
		exponentBase: exponentBase,
		maxExponent:  maxExponent,
	}, nil
}

// NewFixedTimeInterval returns a RoundTimeInterval that always returns
// duration, regardless of round index — sugar for
// NewExponentialTimeInterval(duration, 1.0, 0), used in tests.
func NewFixedTimeInterval(duration time.Duration) *ExponentialTimeInterval {
	interval, err := NewExponentialTimeInterval(duration, 1.0, 0)
	if err != nil {
		// unreachable: exponentBase=1.0, maxExponent=0 always validates.
		panic(err)
	}
	return interval
}

func (e *ExponentialTimeInterval) GetRoundDuration(roundIndexAfterCommittedRound int) time.Duration {
	pow := roundIndexAfterCommittedRound
	if pow > e.maxExponent {
		pow = e.maxExponent
	}
	if pow < 0 {
		pow = 0
	}
	multiplier := math.Pow(e.exponentBase, float64(pow))
	durationMS := uint64(math.Ceil(float64(e.baseMS) * multiplier))
	return time.Duration(durationMS) * time.Millisecond
}
