package pendingvotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/round-pacemaker/consensus/hotstuff/model"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/notifications"
	"github.com/onflow/round-pacemaker/model/flow"
)

func nodeID(b byte) flow.Identifier {
	var id flow.Identifier
	id[0] = b
	return id
}

// fakeReplicas is a fixed four-node committee, one weight unit each, quorum
// threshold 3 — mirroring the Static committee's Byzantine-quorum formula
// without depending on the committee package (keeps this test package
// free to assert on PendingVotes in isolation).
type fakeReplicas struct {
	identities flow.IdentityList
}

func newFakeReplicas(n int) *fakeReplicas {
	identities := make(flow.IdentityList, n)
	for i := 0; i < n; i++ {
		identities[i] = &flow.Identity{NodeID: nodeID(byte(i + 1)), Weight: 1}
	}
	return &fakeReplicas{identities: identities}
}

func (f *fakeReplicas) IdentitiesByEpoch(uint64) (flow.IdentityList, error) {
	return f.identities, nil
}

func (f *fakeReplicas) IdentityByEpoch(_ uint64, participantID flow.Identifier) (*flow.Identity, error) {
	identity, ok := f.identities.ByNodeID(participantID)
	if !ok {
		return nil, assertionError("unknown participant")
	}
	return identity, nil
}

func (f *fakeReplicas) WeightThresholdForRound(uint64) (uint64, error) {
	return 2*f.identities.TotalWeight()/3 + 1, nil
}

func (f *fakeReplicas) Self() flow.Identifier {
	return f.identities[0].NodeID
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

// fakeVerifier accepts every signature unless the configured reject set says
// otherwise, letting tests drive InvalidVote without real cryptography.
type fakeVerifier struct {
	reject map[flow.Identifier]bool
}

func (v *fakeVerifier) VerifyVote(voter *flow.Identity, _ []byte, _ uint64, _, _ flow.Identifier) error {
	if v.reject != nil && v.reject[voter.NodeID] {
		return assertionError("rejected by test double")
	}
	return nil
}

func (v *fakeVerifier) VerifyQC(flow.IdentityList, []byte, uint64, flow.Identifier, flow.Identifier) error {
	return nil
}

func (v *fakeVerifier) VerifyTC(flow.IdentityList, []byte, uint64, []uint64) error {
	return nil
}

func newTestPendingVotes(t *testing.T, n int) (*PendingVotes, *fakeReplicas) {
	t.Helper()
	replicas := newFakeReplicas(n)
	pv, err := New(1, replicas, &fakeVerifier{}, notifications.NoopConsumer{})
	require.NoError(t, err)
	return pv, replicas
}

func vote(author byte, round uint64, blockID, digest flow.Identifier) *model.Vote {
	return &model.Vote{
		Author:           nodeID(author),
		Round:            round,
		ProposedBlockID:  blockID,
		LedgerInfoDigest: digest,
		SigData:          []byte{1, 2, 3},
	}
}

func TestInsertVote_AccumulatesTowardQuorum(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockID, digest := nodeID(100), nodeID(200)

	r1 := pv.InsertVote(vote(1, 1, blockID, digest))
	assert.Equal(t, model.VoteAdded, r1.Kind)
	assert.Equal(t, 1, r1.Count)

	r2 := pv.InsertVote(vote(2, 1, blockID, digest))
	assert.Equal(t, model.VoteAdded, r2.Kind)
	assert.Equal(t, 2, r2.Count)

	r3 := pv.InsertVote(vote(3, 1, blockID, digest))
	require.Equal(t, model.NewQuorumCertificate, r3.Kind)
	require.NotNil(t, r3.QC)
	assert.Equal(t, uint64(1), r3.QC.Round)
	assert.Equal(t, blockID, r3.QC.BlockID)
	assert.Len(t, r3.QC.SignerIDs, 3)
}

func TestInsertVote_DuplicateIsIdempotent(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockID, digest := nodeID(100), nodeID(200)

	v := vote(1, 1, blockID, digest)
	first := pv.InsertVote(v)
	assert.Equal(t, model.VoteAdded, first.Kind)

	second := pv.InsertVote(v)
	assert.Equal(t, model.DuplicateVote, second.Kind)
}

func TestInsertVote_EquivocationRejected(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockA, digestA := nodeID(100), nodeID(200)
	blockB, digestB := nodeID(101), nodeID(201)

	first := pv.InsertVote(vote(1, 1, blockA, digestA))
	assert.Equal(t, model.VoteAdded, first.Kind)

	second := pv.InsertVote(vote(1, 1, blockB, digestB))
	assert.Equal(t, model.EquivocateVote, second.Kind)

	// The equivocating vote must not count toward either bucket's weight.
	r2 := pv.InsertVote(vote(2, 1, blockA, digestA))
	assert.Equal(t, 2, r2.Count)
}

func TestInsertVote_InvalidSignatureRejected(t *testing.T) {
	replicas := newFakeReplicas(4)
	verifier := &fakeVerifier{reject: map[flow.Identifier]bool{nodeID(1): true}}
	pv, err := New(1, replicas, verifier, notifications.NoopConsumer{})
	require.NoError(t, err)

	blockID, digest := nodeID(100), nodeID(200)
	result := pv.InsertVote(vote(1, 1, blockID, digest))
	require.Equal(t, model.InvalidVote, result.Kind)
	assert.True(t, model.IsInvalidVoteError(result.Err))
}

func TestInsertVote_TimeoutQuorumFormsTC(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockID := nodeID(100)

	// Each author votes for a distinct digest, so no QC bucket reaches
	// quorum and only the timeout bucket can.
	timeoutVote := func(author byte) *model.Vote {
		v := vote(author, 1, blockID, nodeID(200+author))
		v.TimeoutSigData = []byte{9, 9}
		return v
	}

	r1 := pv.InsertVote(timeoutVote(1))
	assert.Equal(t, model.VoteAddedWithTimeout, r1.Kind)

	r2 := pv.InsertVote(timeoutVote(2))
	assert.Equal(t, model.VoteAddedWithTimeout, r2.Kind)

	r3 := pv.InsertVote(timeoutVote(3))
	require.Equal(t, model.NewTimeoutCertificate, r3.Kind)
	require.NotNil(t, r3.TC)
	assert.Len(t, r3.TC.SignerIDs, 3)
}

func TestInsertVote_PrefersQuorumCertificateOverTimeoutCertificate(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockID, digest := nodeID(100), nodeID(200)

	timeoutVote := func(author byte) *model.Vote {
		v := vote(author, 1, blockID, digest)
		v.TimeoutSigData = []byte{9, 9}
		return v
	}

	pv.InsertVote(timeoutVote(1))
	pv.InsertVote(timeoutVote(2))

	// The third vote reaches QC quorum (for blockID/digest) and TC quorum
	// (timeout bucket) simultaneously; per the tie-break rule, QC wins.
	r3 := pv.InsertVote(timeoutVote(3))
	require.Equal(t, model.NewQuorumCertificate, r3.Kind)
	require.NotNil(t, r3.QC)
}

func TestVoteReceived(t *testing.T) {
	pv, _ := newTestPendingVotes(t, 4)
	blockID, digest := nodeID(100), nodeID(200)
	v := vote(1, 1, blockID, digest)

	assert.False(t, pv.VoteReceived(v))
	pv.InsertVote(v)
	assert.True(t, pv.VoteReceived(v))
}
