package flow

// Identity represents one consensus participant: its node ID, network
// address, role, and voting weight. Weight stands in for onflow/flow-go's
// stake-weighted voting power.
type Identity struct {
	NodeID  Identifier
	Address string
	Role    string
	Weight  uint64
}

// IdentityList is a set of identities, ordered as supplied. Filter and
// TotalWeight mirror the combinators flow-go's validator package calls on
// flow.IdentityList (allParticipants.Filter(...).TotalWeight()).
type IdentityList []*Identity

// IdentityFilter decides whether an identity should be kept.
type IdentityFilter func(*Identity) bool

// Filter returns the sublist of identities for which all predicates hold.
func (il IdentityList) Filter(filters ...IdentityFilter) IdentityList {
	out := make(IdentityList, 0, len(il))
outer:
	for _, identity := range il {
		for _, f := range filters {
			if !f(identity) {
				continue outer
			}
		}
		out = append(out, identity)
	}
	return out
}

// TotalWeight sums the weight of every identity in the list.
func (il IdentityList) TotalWeight() uint64 {
	var total uint64
	for _, identity := range il {
		total += identity.Weight
	}
	return total
}

// ByNodeID returns the identity with the given node ID, if present.
func (il IdentityList) ByNodeID(nodeID Identifier) (*Identity, bool) {
	for _, identity := range il {
		if identity.NodeID == nodeID {
			return identity, true
		}
	}
	return nil, false
}
