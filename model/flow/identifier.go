// Package flow contains the lightweight identity and entity-ID types shared
// across the consensus packages. It mirrors the subset of onflow/flow-go's
// model/flow package that the round pacemaker needs: content identifiers and
// weighted identities. Block contents, payloads, and the rest of the ledger
// model are out of scope here.
package flow

import (
	"encoding/hex"
	"fmt"
)

// Identifier is a 32-byte content identifier, used for author IDs, block
// IDs, and ledger-info digests alike.
type Identifier [32]byte

// ZeroID is the zero-value Identifier, used as a placeholder for "no block"
// (e.g. the QC referenced by the genesis round).
var ZeroID = Identifier{}

func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// Format supports %x / %s verbs so callers can log identifiers the same way
// flow-go logs flow.Identifier values (hex, no leading 0x).
func (id Identifier) Format(f fmt.State, c rune) {
	switch c {
	case 'x', 's', 'v':
		_, _ = f.Write([]byte(id.String()))
	default:
		_, _ = f.Write([]byte(id.String()))
	}
}

// IsZero reports whether id is the zero identifier.
func (id Identifier) IsZero() bool {
	return id == ZeroID
}

// HashToID truncates/pads an arbitrary byte slice into an Identifier. Not a
// cryptographic commitment scheme by itself — callers are expected to pass
// already-hashed bytes (e.g. a SHA-256 digest of a LedgerInfo).
func HashToID(b []byte) Identifier {
	var id Identifier
	copy(id[:], b)
	return id
}
