// Package timeservice implements component C2 (spec.md §4.2): a clock
// abstraction plus best-effort deferred delivery onto a channel. Grounded
// on the original Rust util::time_service::TimeService trait (now() /
// run_after(delay, task)) referenced by round_state.rs.
package timeservice

import "time"

// TimeService provides the current time and schedules deferred,
// best-effort callbacks. Late delivery is tolerated; spurious early
// delivery is forbidden. RunAfter returns immediately — the deferred task
// runs in the TimeService's own execution context and must be safe to
// invoke after the caller has moved on to a later round (staleness is
// filtered by the caller, not prevented here — see spec.md §4.2, §9).
type TimeService interface {
	Now() time.Time
	RunAfter(delay time.Duration, task func())
}

// SystemTimeService is the production TimeService, backed by
// time.AfterFunc. Each scheduled task runs on its own goroutine, spawned
// by the Go runtime's timer machinery.
type SystemTimeService struct{}

var _ TimeService = SystemTimeService{}

// New returns the production TimeService.
func New() SystemTimeService {
	return SystemTimeService{}
}

func (SystemTimeService) Now() time.Time {
	return time.Now()
}

func (SystemTimeService) RunAfter(delay time.Duration, task func()) {
	time.AfterFunc(delay, task)
}

// EpochRound is the payload tag carried on timer channels: the timer's
// consumer filters deliveries whose (Epoch, Round) no longer matches the
// current cursor (spec.md §5: "Timer messages for round r may be
// delivered after the state has advanced... consumers filter on
// (epoch, round)").
type EpochRound struct {
	Epoch uint64
	Round uint64
}

// SendEpochRound returns a task that sends er on ch when invoked,
// mirroring the original Rust's SendTask::make(sender, (epoch, round)).
// If ch is full and unbuffered/bounded, the send blocks the timer
// executor goroutine rather than the caller — acceptable per spec.md §5,
// since timer messages are a liveness aid, never a safety requirement.
func SendEpochRound(ch chan<- EpochRound, er EpochRound) func() {
	return func() {
		ch <- er
	}
}
