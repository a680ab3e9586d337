package model

import "github.com/onflow/round-pacemaker/model/flow"

// QuorumCertificate is the aggregated evidence that a supermajority of
// voting power certified a given LedgerInfo at Round. Fields mirror
// flow-go's flow.QuorumCertificate (Round, BlockID, SignerIDs, SigData);
// LedgerInfoDigest additionally carries the commit-info digest the spec's
// Vote/PendingVotes model aggregates on.
type QuorumCertificate struct {
	Round            uint64
	BlockID          flow.Identifier
	LedgerInfoDigest flow.Identifier
	SignerIDs        []flow.Identifier
	SigData          []byte
}

// TimeoutCertificate is the aggregated evidence that a supermajority of
// voting power timed out at Round. HighQCRounds/HighestQC mirror flow-go's
// flow.TimeoutCertificate TOHighQCViews/TOHighestQC fields: each
// contributing signer reports the highest QC round it knew about, and
// HighestQC is the actual QC for the largest such round — giving the new
// leader the newest certified block without a separate round-trip.
type TimeoutCertificate struct {
	Round        uint64
	SignerIDs    []flow.Identifier
	HighQCRounds []uint64
	HighestQC    *QuorumCertificate
	SigData      []byte
}
