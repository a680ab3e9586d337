package model

import "github.com/onflow/round-pacemaker/model/flow"

// Vote is one validator's signed stance on a proposed block at a specific
// round. A vote may additionally carry a timeout signature (the author
// both votes for a block and times out the round in the same message,
// which PendingVotes counts toward both the QC and TC buckets) and the
// highest QC round the author knew about at the time it timed out, needed
// to build a TimeoutCertificate's HighQCRounds/HighestQC.
type Vote struct {
	Author           flow.Identifier
	Round            uint64
	ProposedBlockID  flow.Identifier
	LedgerInfoDigest flow.Identifier
	SigData          []byte

	TimeoutSigData   []byte
	TimeoutHighestQC *QuorumCertificate
}

// HasTimeout reports whether this vote also carries a timeout signature.
func (v *Vote) HasTimeout() bool {
	return v.TimeoutSigData != nil
}

// ID derives a stable identifier for the vote from the first 16 bytes of
// its author, its round, and the first 8 bytes of its LedgerInfoDigest, so
// votes by the same author in the same round for different digests get
// different IDs.
func (v *Vote) ID() flow.Identifier {
	var id flow.Identifier
	copy(id[:16], v.Author[:16])
	for i := 0; i < 8; i++ {
		id[16+i] = byte(v.Round >> (8 * i))
	}
	copy(id[24:], v.LedgerInfoDigest[:8])
	return id
}
