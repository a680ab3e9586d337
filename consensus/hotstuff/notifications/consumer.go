// Package notifications defines the observer interface that roundstate and
// pendingvotes raise events through, mirroring the
// github.com/onflow/flow-go/consensus/hotstuff/notifications package (whose
// notifications.NoopConsumer is embedded by the integration test harness in
// consensus/integration/stopper_test.go).
package notifications

import (
	"github.com/onflow/round-pacemaker/consensus/hotstuff/model"
)

// Consumer observes round-state and vote-aggregation events for monitoring,
// debugging, and metrics. No method is allowed to block or return an error:
// a slow or panicking consumer must never be able to stall consensus.
type Consumer interface {
	// OnNewRoundEvent is raised whenever RoundState.ProcessCertificates
	// advances the current round.
	OnNewRoundEvent(event *model.NewRoundEvent)

	// OnLocalTimeout is raised when the local round-timeout fires.
	OnLocalTimeout(round uint64)

	// OnDoubleVotingDetected is raised when an author equivocates within a
	// round (same round, conflicting LedgerInfoDigest).
	OnDoubleVotingDetected(firstVote, conflictingVote *model.Vote)

	// OnInvalidVoteDetected is raised when a vote fails signature
	// verification.
	OnInvalidVoteDetected(vote *model.Vote, err error)

	// OnQuorumCertificate is raised when PendingVotes assembles a QC.
	OnQuorumCertificate(qc *model.QuorumCertificate)

	// OnTimeoutCertificate is raised when PendingVotes assembles a TC.
	OnTimeoutCertificate(tc *model.TimeoutCertificate)
}

// NoopConsumer implements Consumer with no-ops. Embed it in test harnesses
// that only care about a subset of events, overriding the methods they need
// — the same pattern flow-go's notifications.NoopConsumer enables.
type NoopConsumer struct{}

var _ Consumer = (*NoopConsumer)(nil)

func (NoopConsumer) OnNewRoundEvent(*model.NewRoundEvent)            {}
func (NoopConsumer) OnLocalTimeout(uint64)                           {}
func (NoopConsumer) OnDoubleVotingDetected(*model.Vote, *model.Vote) {}
func (NoopConsumer) OnInvalidVoteDetected(*model.Vote, error)        {}
func (NoopConsumer) OnQuorumCertificate(*model.QuorumCertificate)    {}
func (NoopConsumer) OnTimeoutCertificate(*model.TimeoutCertificate)  {}
