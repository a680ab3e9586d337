package model

// ReceptionKind enumerates the possible verdicts PendingVotes.InsertVote /
// RoundState.InsertVote can return for an inserted vote. spec.md §4.3/§7
// requires these be surfaced as typed verdicts, never as panics or errors
// that would halt the consensus loop.
type ReceptionKind uint8

const (
	// VoteAdded indicates the vote was recorded; Count holds the number of
	// votes now accumulated for its LedgerInfoDigest bucket.
	VoteAdded ReceptionKind = iota
	// VoteAddedWithTimeout indicates the vote was recorded and additionally
	// contributed to the round's timeout-signature bucket, without yet
	// forming a TC.
	VoteAddedWithTimeout
	// NewQuorumCertificate indicates this vote's voting power reached
	// quorum and QC holds the assembled certificate.
	NewQuorumCertificate
	// NewTimeoutCertificate indicates this vote's timeout signature
	// reached quorum and TC holds the assembled certificate.
	NewTimeoutCertificate
	// DuplicateVote indicates this exact (author, vote content) pair was
	// already recorded.
	DuplicateVote
	// EquivocateVote indicates author previously voted for a different
	// LedgerInfoDigest in this round; the new vote was not counted.
	EquivocateVote
	// InvalidVote indicates the vote's signature failed verification; the
	// vote was rejected without any state change. Err holds the cause.
	InvalidVote
	// UnexpectedRound indicates the vote's round did not match the
	// aggregator's round. VotedRound/ExpectedRound are populated.
	UnexpectedRound
)

// VoteReceptionResult is the tagged verdict returned for every vote
// insertion attempt. Only the fields relevant to Kind are populated.
type VoteReceptionResult struct {
	Kind          ReceptionKind
	Count         int
	QC            *QuorumCertificate
	TC            *TimeoutCertificate
	VotedRound    uint64
	ExpectedRound uint64
	Err           error
}

func VoteAddedResult(count int) VoteReceptionResult {
	return VoteReceptionResult{Kind: VoteAdded, Count: count}
}

func VoteAddedWithTimeoutResult(count int) VoteReceptionResult {
	return VoteReceptionResult{Kind: VoteAddedWithTimeout, Count: count}
}

func NewQuorumCertificateResult(qc *QuorumCertificate) VoteReceptionResult {
	return VoteReceptionResult{Kind: NewQuorumCertificate, QC: qc}
}

func NewTimeoutCertificateResult(tc *TimeoutCertificate) VoteReceptionResult {
	return VoteReceptionResult{Kind: NewTimeoutCertificate, TC: tc}
}

func DuplicateVoteResult() VoteReceptionResult {
	return VoteReceptionResult{Kind: DuplicateVote}
}

func EquivocateVoteResult() VoteReceptionResult {
	return VoteReceptionResult{Kind: EquivocateVote}
}

func InvalidVoteResult(err error) VoteReceptionResult {
	return VoteReceptionResult{Kind: InvalidVote, Err: err}
}

func UnexpectedRoundResult(voted, expected uint64) VoteReceptionResult {
	return VoteReceptionResult{Kind: UnexpectedRound, VotedRound: voted, ExpectedRound: expected}
}
