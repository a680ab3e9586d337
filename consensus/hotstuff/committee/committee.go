// Package committee defines the consensus-membership and signature
// verification capabilities that PendingVotes/RoundState consume, and a
// fixed-epoch implementation of each. It splits flow-go's
// consensus/hotstuff "Replicas" and "Verifier" interfaces exactly the way
// validator.Validator calls them in validator.go (v.committee.IdentitiesByEpoch,
// v.committee.WeightThresholdForView, v.verifier.VerifyVote/VerifyQC/VerifyTC).
package committee

import (
	"github.com/onflow/round-pacemaker/model/flow"
)

// Replicas answers committee-membership and weight-threshold questions for
// a given round. Validator-set reconfiguration (the "epoch" changing the
// underlying membership) is out of scope for this module (spec.md
// Non-goals); Static below always answers from one fixed membership.
type Replicas interface {
	// IdentitiesByEpoch returns every identity authorized to participate at
	// the epoch owning round.
	IdentitiesByEpoch(round uint64) (flow.IdentityList, error)
	// IdentityByEpoch returns the identity of a single participant.
	IdentityByEpoch(round uint64, participantID flow.Identifier) (*flow.Identity, error)
	// WeightThresholdForRound returns the minimum accumulated weight
	// required to reach quorum at round.
	WeightThresholdForRound(round uint64) (uint64, error)
	// Self returns this node's own identifier.
	Self() flow.Identifier
}

// Verifier checks the cryptographic signatures carried by votes, QCs, and
// TCs. Concrete signature schemes are explicitly out of scope for this
// module (spec.md §1 Non-goals); only the verification boundary is
// modeled here, matching how flow-go's hotstuff.Verifier is consumed by
// validator.Validator without that package caring which scheme backs it.
type Verifier interface {
	VerifyVote(voter *flow.Identity, sigData []byte, round uint64, proposedBlockID, ledgerInfoDigest flow.Identifier) error
	VerifyQC(signers flow.IdentityList, sigData []byte, round uint64, blockID, ledgerInfoDigest flow.Identifier) error
	VerifyTC(signers flow.IdentityList, sigData []byte, round uint64, highQCRounds []uint64) error
}
