package committee

import (
	"crypto/ed25519"
	"encoding/binary"
	"fmt"

	"github.com/onflow/round-pacemaker/model/flow"
)

// Ed25519Verifier is a minimal Verifier implementation used by tests and
// demos. Real signature schemes (threshold/BLS aggregation) are explicitly
// out of scope for this module (spec.md §1 Non-goals: "no safety
// reasoning... cryptographic signature verification... not specified
// here"); none of the retrieved example repositories' dependency graphs
// supplied a fetchable aggregate-signature library to ground a richer
// implementation on, so this double falls back to the standard library's
// crypto/ed25519 and verifies each signer's contribution individually
// rather than a single aggregated signature.
type Ed25519Verifier struct {
	pubKeys map[flow.Identifier]ed25519.PublicKey
}

var _ Verifier = (*Ed25519Verifier)(nil)

// NewEd25519Verifier builds a verifier over the given node ID -> public key
// map.
func NewEd25519Verifier(pubKeys map[flow.Identifier]ed25519.PublicKey) *Ed25519Verifier {
	return &Ed25519Verifier{pubKeys: pubKeys}
}

// VoteSigningBytes returns the canonical message a vote's single-signer
// SigData signs over: round || proposed block ID || ledger info digest.
func VoteSigningBytes(round uint64, proposedBlockID, ledgerInfoDigest flow.Identifier) []byte {
	buf := make([]byte, 8+len(proposedBlockID)+len(ledgerInfoDigest))
	binary.BigEndian.PutUint64(buf, round)
	copy(buf[8:], proposedBlockID[:])
	copy(buf[8+len(proposedBlockID):], ledgerInfoDigest[:])
	return buf
}

func (v *Ed25519Verifier) VerifyVote(voter *flow.Identity, sigData []byte, round uint64, proposedBlockID, ledgerInfoDigest flow.Identifier) error {
	key, ok := v.pubKeys[voter.NodeID]
	if !ok {
		return fmt.Errorf("no public key registered for %s", voter.NodeID)
	}
	msg := VoteSigningBytes(round, proposedBlockID, ledgerInfoDigest)
	if !ed25519.Verify(key, msg, sigData) {
		return fmt.Errorf("signature verification failed for voter %s at round %d", voter.NodeID, round)
	}
	return nil
}

// VerifyQC and VerifyTC verify a naive multi-signature bag: SigData is the
// concatenation of each signer's individual ed25519 signature, in the same
// order as the signers slice. Real BLS aggregation would collapse this to
// one constant-size signature; that scheme itself is out of scope here.
func (v *Ed25519Verifier) VerifyQC(signers flow.IdentityList, sigData []byte, round uint64, blockID, ledgerInfoDigest flow.Identifier) error {
	return v.verifyBag(signers, sigData, VoteSigningBytes(round, blockID, ledgerInfoDigest))
}

func (v *Ed25519Verifier) VerifyTC(signers flow.IdentityList, sigData []byte, round uint64, highQCRounds []uint64) error {
	msg := make([]byte, 0, 8*(1+len(highQCRounds)))
	roundBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(roundBuf, round)
	msg = append(msg, roundBuf...)
	for _, r := range highQCRounds {
		binary.BigEndian.PutUint64(roundBuf, r)
		msg = append(msg, roundBuf...)
	}
	return v.verifyBag(signers, sigData, msg)
}

func (v *Ed25519Verifier) verifyBag(signers flow.IdentityList, sigData []byte, msg []byte) error {
	if len(sigData)%ed25519.SignatureSize != 0 {
		return fmt.Errorf("signature bag has invalid length %d", len(sigData))
	}
	if len(sigData)/ed25519.SignatureSize != len(signers) {
		return fmt.Errorf("expected %d signatures, got %d", len(signers), len(sigData)/ed25519.SignatureSize)
	}
	for i, signer := range signers {
		key, ok := v.pubKeys[signer.NodeID]
		if !ok {
			return fmt.Errorf("no public key registered for %s", signer.NodeID)
		}
		sig := sigData[i*ed25519.SignatureSize : (i+1)*ed25519.SignatureSize]
		if !ed25519.Verify(key, msg, sig) {
			return fmt.Errorf("signature verification failed for signer %s", signer.NodeID)
		}
	}
	return nil
}
