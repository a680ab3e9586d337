// Package roundstate implements component C4 (spec.md §4.4): the round
// pacemaker itself. RoundState owns the current round cursor, the
// highest-committed-round hint, the three per-round deadlines, and the
// current round's PendingVotes instance, and emits NewRoundEvents as
// certificates arrive. Grounded directly on the original Rust RoundState
// in round_state.rs, restructured in the logging/notification idiom of
// consensus/hotstuff/eventhandler.EventHandler (component logger via
// log.With().Str("hotstuff", ...), a notifications.Consumer, explicit
// "No errors are expected during normal operation" doc comments on the
// hot path methods).
package roundstate

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/round-pacemaker/consensus/hotstuff/committee"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/counters"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/model"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/notifications"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/pacemaker"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/pendingvotes"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/timeservice"
	"github.com/onflow/round-pacemaker/module/metrics"
)

// RoundState moves forward as it receives new certificates, arming local
// timers and aggregating votes along the way. Not concurrency safe: all
// mutating methods must be serialized by the caller, exactly as
// consensus/hotstuff/eventhandler.EventHandler documents for itself.
// A RoundState instance lives for one epoch; it is dropped and replaced
// wholesale on epoch change (spec.md §3 Lifecycles).
type RoundState struct {
	log zerolog.Logger

	epoch     uint64
	replicas  committee.Replicas
	verifier  committee.Verifier
	notifier  notifications.Consumer
	metrics   *metrics.Collector
	interval  pacemaker.RoundTimeInterval
	clock     timeservice.TimeService

	localTimeoutCh     chan<- timeservice.EpochRound
	proposalTimeoutCh  chan<- timeservice.EpochRound
	newRoundTimeoutCh  chan<- timeservice.EpochRound

	currentRound          uint64
	highestCommittedRound uint64
	currentRoundDeadline  time.Time
	newRoundSent          bool
	pendingVotes          *pendingvotes.PendingVotes
	voteSent              *model.Vote

	localTimeoutRearmCount counters.StrictMonotonousCounter
}

// Config bundles RoundState's external collaborators. All fields are
// required except Metrics and Notifier, which default to a no-op
// collector/consumer.
type Config struct {
	Epoch    uint64
	Replicas committee.Replicas
	Verifier committee.Verifier
	Notifier notifications.Consumer
	Metrics  *metrics.Collector
	Interval pacemaker.RoundTimeInterval
	Clock    timeservice.TimeService

	LocalTimeoutCh    chan<- timeservice.EpochRound
	ProposalTimeoutCh chan<- timeservice.EpochRound
	NewRoundTimeoutCh chan<- timeservice.EpochRound
}

// New creates a RoundState at round 0 (genesis), matching the initial
// state in spec.md §4.4: current_round = 0, highest_committed_round = 0,
// current_round_deadline = now().
func New(log zerolog.Logger, cfg Config) (*RoundState, error) {
	if cfg.Notifier == nil {
		cfg.Notifier = notifications.NoopConsumer{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollector()
	}
	pv, err := pendingvotes.New(0, cfg.Replicas, cfg.Verifier, cfg.Notifier)
	if err != nil {
		return nil, err
	}
	return &RoundState{
		log:                   log.With().Str("hotstuff", "round_state").Logger(),
		epoch:                 cfg.Epoch,
		replicas:              cfg.Replicas,
		verifier:              cfg.Verifier,
		notifier:              cfg.Notifier,
		metrics:               cfg.Metrics,
		interval:              cfg.Interval,
		clock:                 cfg.Clock,
		localTimeoutCh:        cfg.LocalTimeoutCh,
		proposalTimeoutCh:     cfg.ProposalTimeoutCh,
		newRoundTimeoutCh:     cfg.NewRoundTimeoutCh,
		currentRound:          0,
		highestCommittedRound: 0,
		currentRoundDeadline:  cfg.Clock.Now(),
		pendingVotes:          pv,
		localTimeoutRearmCount: counters.NewMonotonousCounter(0),
	}, nil
}

// CurrentRound returns the current round.
func (r *RoundState) CurrentRound() uint64 {
	return r.currentRound
}

// HighestCommittedRound returns the highest committed round reported so
// far.
func (r *RoundState) HighestCommittedRound() uint64 {
	return r.highestCommittedRound
}

// CurrentRoundDeadline returns the absolute deadline for the current
// round's local timeout.
func (r *RoundState) CurrentRoundDeadline() time.Time {
	return r.currentRoundDeadline
}

// VoteSent returns the vote this node cast for the current round, if
// any.
func (r *RoundState) VoteSent() *model.Vote {
	return r.voteSent
}

// VoteReceived reports whether vote's author already contributed a vote
// for the same LedgerInfoDigest to the current round.
func (r *RoundState) VoteReceived(vote *model.Vote) bool {
	return r.pendingVotes.VoteReceived(vote)
}

// ProcessCertificates notifies RoundState about a potentially new QC, TC,
// and highest committed round. Returns the NewRoundEvent if this moved
// the current round forward, or nil if syncInfo was stale (spec.md §4.4
// step 3: "monotonic guard"). No errors are expected during normal
// operation: SyncInfo is assumed already validated by the caller.
func (r *RoundState) ProcessCertificates(syncInfo model.SyncInfo) *model.NewRoundEvent {
	if syncInfo.HighestCommitRound() > r.highestCommittedRound {
		r.highestCommittedRound = syncInfo.HighestCommitRound()
	}

	newRound := syncInfo.HighestRound() + 1
	if newRound <= r.currentRound {
		return nil
	}

	r.currentRound = newRound
	r.newRoundSent = false
	r.voteSent = nil

	pv, err := pendingvotes.New(r.currentRound, r.replicas, r.verifier, r.notifier)
	if err != nil {
		// Committee lookups for the current round must succeed — this is a
		// symptom of misconfiguration, not a normal-flow condition callers
		// need to branch on. RoundState has no mechanism to surface errors
		// mid-transition (spec.md §7: never halt the consensus loop), so we
		// fall back to the previous instance and log loudly.
		r.log.Error().Err(err).Uint64("round", r.currentRound).Msg("could not allocate pending votes for new round")
	} else {
		r.pendingVotes = pv
	}

	timeout := r.setupLocalTimeout()

	reason := model.QCReady
	if syncInfo.HighestTC != nil {
		reason = model.Timeout
	}

	switch reason {
	case model.QCReady:
		r.metrics.QCRoundStarted()
	case model.Timeout:
		r.metrics.TimeoutRoundStarted()
	}

	event := &model.NewRoundEvent{
		Round:   r.currentRound,
		Reason:  reason,
		Timeout: timeout,
	}
	r.log.Debug().Uint64("round", newRound).Msg(event.String())
	r.notifier.OnNewRoundEvent(event)
	return event
}

// InsertVote delegates vote to the current round's PendingVotes if vote
// is for the current round, otherwise returns UnexpectedRound.
func (r *RoundState) InsertVote(vote *model.Vote) model.VoteReceptionResult {
	if vote.Round != r.currentRound {
		return model.UnexpectedRoundResult(vote.Round, r.currentRound)
	}
	return r.pendingVotes.InsertVote(vote)
}

// RecordVote stores vote as this node's own vote for the current round,
// if it is for the current round.
func (r *RoundState) RecordVote(vote *model.Vote) {
	if vote.Round == r.currentRound {
		r.voteSent = vote
	}
}

// ProcessLocalTimeout re-arms the local timeout unconditionally and
// returns true. Per spec.md §4.4/§9, stale (epoch, round) pairs are not
// required to be rejected here — the consumer of the timeout event is
// responsible for matching against its own cursor — but we still count
// every rearm for observability.
func (r *RoundState) ProcessLocalTimeout(er timeservice.EpochRound) bool {
	r.log.Info().Uint64("round", er.Round).Msg("local timeout")
	r.metrics.LocalTimeout()
	r.localTimeoutRearmCount.Set(r.localTimeoutRearmCount.Value() + 1)
	r.notifier.OnLocalTimeout(er.Round)
	r.setupLocalTimeout()
	return true
}

// setupLocalTimeout arms the local round-timeout task and returns its
// full duration, mirroring the original Rust's private setup_timeout.
func (r *RoundState) setupLocalTimeout() time.Duration {
	timeout := r.currentRoundTimeout()
	now := r.clock.Now()
	r.currentRoundDeadline = now.Add(timeout)

	epoch, round := r.epoch, r.currentRound
	r.clock.RunAfter(timeout, timeservice.SendEpochRound(r.localTimeoutCh, timeservice.EpochRound{Epoch: epoch, Round: round}))
	return timeout
}

// SetupProposalTimeout arms the (leader-side) proposal-selection timeout,
// half the round duration. Not stored in state — armed on demand, as
// spec.md §4.4 describes.
func (r *RoundState) SetupProposalTimeout() time.Duration {
	timeout := r.currentRoundTimeout() / 2
	epoch, round := r.epoch, r.currentRound
	r.clock.RunAfter(timeout, timeservice.SendEpochRound(r.proposalTimeoutCh, timeservice.EpochRound{Epoch: epoch, Round: round}))
	return timeout
}

// SetupNewRoundTimeout arms the new-round timeout at most once per round
// (spec.md §4.4, §8 property 5): the second call within the same round
// returns (0, false).
func (r *RoundState) SetupNewRoundTimeout() (time.Duration, bool) {
	if r.newRoundSent {
		return 0, false
	}
	timeout := r.currentRoundTimeout() / 2
	epoch, round := r.epoch, r.currentRound
	r.clock.RunAfter(timeout, timeservice.SendEpochRound(r.newRoundTimeoutCh, timeservice.EpochRound{Epoch: epoch, Round: round}))
	r.newRoundSent = true
	return timeout, true
}

// currentRoundTimeout computes the round duration from the time-interval
// policy, using the three-chain-frontier round index derived below.
func (r *RoundState) currentRoundTimeout() time.Duration {
	return r.interval.GetRoundDuration(r.roundIndexAfterCommittedRound())
}

// roundIndexAfterCommittedRound implements spec.md §4.1's three-chain
// frontier arithmetic verbatim:
//   - current_round - 1 when highest_committed_round == 0 (genesis is
//     exempt from the 3-chain commit rule);
//   - 0 when current_round < highest_committed_round + 3;
//   - current_round - highest_committed_round - 3 otherwise.
func (r *RoundState) roundIndexAfterCommittedRound() int {
	if r.highestCommittedRound == 0 {
		return int(r.currentRound) - 1
	}
	if r.currentRound < r.highestCommittedRound+3 {
		return 0
	}
	return int(r.currentRound - r.highestCommittedRound - 3)
}
