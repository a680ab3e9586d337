// Package pendingvotes implements component C3 (spec.md §4.3): the
// per-round vote aggregator. Indexing and one-shot certificate assembly
// are grounded on consensus/hotstuff/timeoutcollector's TimeoutProcessor
// (accumulatedWeightTracker / highestQCTracker), adapted from tracking a
// single timeout bucket to tracking one QC bucket per LedgerInfoDigest
// plus one TC bucket for the round.
package pendingvotes

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/onflow/round-pacemaker/consensus/hotstuff/committee"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/model"
	"github.com/onflow/round-pacemaker/consensus/hotstuff/notifications"
	"github.com/onflow/round-pacemaker/model/flow"
)

// accumulatedWeightTracker reports, as a one-time event, whenever
// accumulated weight first reaches minRequiredWeight. Directly mirrors
// timeoutcollector.accumulatedWeightTracker.
type accumulatedWeightTracker struct {
	minRequiredWeight uint64
	done              atomic.Bool
}

func (t *accumulatedWeightTracker) Done() bool {
	return t.done.Load()
}

func (t *accumulatedWeightTracker) Track(weight uint64) bool {
	if weight < t.minRequiredWeight {
		return false
	}
	return t.done.CAS(false, true)
}

// ledgerInfoBucket accumulates voting power for one LedgerInfoDigest
// within the round.
type ledgerInfoBucket struct {
	digest    flow.Identifier
	blockID   flow.Identifier
	signerIDs []flow.Identifier
	sigs      [][]byte
	weight    uint64
	qcTracker accumulatedWeightTracker
}

// PendingVotes accumulates votes for exactly one round. Per spec.md
// Invariant 2, a PendingVotes instance is associated with exactly one
// round; RoundState replaces the whole instance on every round
// transition rather than resetting this one in place.
type PendingVotes struct {
	mu sync.Mutex

	round    uint64
	replicas committee.Replicas
	verifier committee.Verifier
	notifier notifications.Consumer

	buckets    map[flow.Identifier]*ledgerInfoBucket // keyed by LedgerInfoDigest
	authorVote map[flow.Identifier]*model.Vote        // keyed by author, regular-vote equivocation index
	qcThreshold uint64

	// timeout bucket
	timeoutSigners      []flow.Identifier
	timeoutHighQCRounds  []uint64
	timeoutSigs          [][]byte
	timeoutWeight        uint64
	timeoutAuthors       map[flow.Identifier]struct{}
	highestTimeoutQC     *model.QuorumCertificate
	tcTracker            accumulatedWeightTracker
}

// New creates a PendingVotes for round, sized for the committee active at
// that round.
func New(round uint64, replicas committee.Replicas, verifier committee.Verifier, notifier notifications.Consumer) (*PendingVotes, error) {
	threshold, err := replicas.WeightThresholdForRound(round)
	if err != nil {
		return nil, err
	}
	return &PendingVotes{
		round:          round,
		replicas:       replicas,
		verifier:       verifier,
		notifier:       notifier,
		buckets:        make(map[flow.Identifier]*ledgerInfoBucket),
		authorVote:     make(map[flow.Identifier]*model.Vote),
		qcThreshold:    threshold,
		timeoutAuthors: make(map[flow.Identifier]struct{}),
		tcTracker:      accumulatedWeightTracker{minRequiredWeight: threshold},
	}, nil
}

// Round returns the round this aggregator is collecting votes for.
func (p *PendingVotes) Round() uint64 {
	return p.round
}

// VoteReceived reports whether vote's author has already contributed a
// vote for the same LedgerInfoDigest to this round. A recorded vote of the
// author for a different digest yields false.
func (p *PendingVotes) VoteReceived(vote *model.Vote) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.authorVote[vote.Author]
	return ok && existing.LedgerInfoDigest == vote.LedgerInfoDigest
}

// InsertVote implements the five-step algorithm of spec.md §4.3.
func (p *PendingVotes) InsertVote(vote *model.Vote) model.VoteReceptionResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	// step 1: verify author signature.
	voter, err := p.replicas.IdentityByEpoch(p.round, vote.Author)
	if err != nil {
		invalidErr := model.NewInvalidVoteError(vote, err)
		p.notifier.OnInvalidVoteDetected(vote, invalidErr)
		return model.InvalidVoteResult(invalidErr)
	}
	if err := p.verifier.VerifyVote(voter, vote.SigData, vote.Round, vote.ProposedBlockID, vote.LedgerInfoDigest); err != nil {
		invalidErr := model.NewInvalidVoteError(vote, err)
		p.notifier.OnInvalidVoteDetected(vote, invalidErr)
		return model.InvalidVoteResult(invalidErr)
	}

	// step 2: equivocation / duplicate check against the author index.
	if prior, ok := p.authorVote[vote.Author]; ok {
		if prior.LedgerInfoDigest == vote.LedgerInfoDigest {
			return model.DuplicateVoteResult()
		}
		p.notifier.OnDoubleVotingDetected(prior, vote)
		return model.EquivocateVoteResult()
	}
	p.authorVote[vote.Author] = vote

	// step 3: insert under the LedgerInfoDigest bucket.
	bucket, ok := p.buckets[vote.LedgerInfoDigest]
	if !ok {
		bucket = &ledgerInfoBucket{
			digest:  vote.LedgerInfoDigest,
			blockID: vote.ProposedBlockID,
			qcTracker: accumulatedWeightTracker{
				minRequiredWeight: p.qcThreshold,
			},
		}
		p.buckets[vote.LedgerInfoDigest] = bucket
	}
	bucket.signerIDs = append(bucket.signerIDs, vote.Author)
	bucket.sigs = append(bucket.sigs, vote.SigData)
	bucket.weight += voter.Weight

	carriesTimeout := vote.HasTimeout()

	// step 4: quorum check — tie-break in favor of QC over TC (spec.md §4.3
	// "progress is preferred over view-change").
	if bucket.qcTracker.Track(bucket.weight) {
		qc := &model.QuorumCertificate{
			Round:            p.round,
			BlockID:          bucket.blockID,
			LedgerInfoDigest: bucket.digest,
			SignerIDs:        append([]flow.Identifier(nil), bucket.signerIDs...),
			SigData:          concatSigs(bucket.sigs),
		}
		p.notifier.OnQuorumCertificate(qc)
		if carriesTimeout {
			p.insertTimeoutLocked(vote, voter.Weight)
		}
		return model.NewQuorumCertificateResult(qc)
	}

	if !carriesTimeout {
		return model.VoteAddedResult(len(bucket.signerIDs))
	}

	// step 5: vote also carries a timeout signature.
	if tc := p.insertTimeoutLocked(vote, voter.Weight); tc != nil {
		return model.NewTimeoutCertificateResult(tc)
	}
	return model.VoteAddedWithTimeoutResult(len(bucket.signerIDs))
}

// insertTimeoutLocked folds vote's timeout contribution into the round's
// TC bucket. Caller must hold p.mu. Returns the assembled TC if this
// contribution just reached quorum, nil otherwise.
func (p *PendingVotes) insertTimeoutLocked(vote *model.Vote, weight uint64) *model.TimeoutCertificate {
	if _, ok := p.timeoutAuthors[vote.Author]; ok {
		return nil
	}
	p.timeoutAuthors[vote.Author] = struct{}{}
	p.timeoutSigners = append(p.timeoutSigners, vote.Author)
	p.timeoutSigs = append(p.timeoutSigs, vote.TimeoutSigData)
	p.timeoutWeight += weight

	highQCRound := uint64(0)
	if vote.TimeoutHighestQC != nil {
		highQCRound = vote.TimeoutHighestQC.Round
		if p.highestTimeoutQC == nil || vote.TimeoutHighestQC.Round > p.highestTimeoutQC.Round {
			p.highestTimeoutQC = vote.TimeoutHighestQC
		}
	}
	p.timeoutHighQCRounds = append(p.timeoutHighQCRounds, highQCRound)

	if !p.tcTracker.Track(p.timeoutWeight) {
		return nil
	}
	tc := &model.TimeoutCertificate{
		Round:        p.round,
		SignerIDs:    append([]flow.Identifier(nil), p.timeoutSigners...),
		HighQCRounds: append([]uint64(nil), p.timeoutHighQCRounds...),
		HighestQC:    p.highestTimeoutQC,
		SigData:      concatSigs(p.timeoutSigs),
	}
	p.notifier.OnTimeoutCertificate(tc)
	return tc
}

func concatSigs(sigs [][]byte) []byte {
	var out []byte
	for _, s := range sigs {
		out = append(out, s...)
	}
	return out
}
