// Package filter provides composable flow.IdentityFilter predicates, adapted
// from onflow/flow-go's model/flow/filter package (Address/NodeID/Role/Not)
// and renamed to match the call sites flow-go's validator package uses
// (filter.HasNodeID(...)).
package filter

import "github.com/onflow/round-pacemaker/model/flow"

// Any matches every identity.
func Any(*flow.Identity) bool {
	return true
}

// HasNodeID matches identities whose NodeID is in the given set.
func HasNodeID(nodeIDs ...flow.Identifier) flow.IdentityFilter {
	lookup := make(map[flow.Identifier]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		lookup[id] = struct{}{}
	}
	return func(identity *flow.Identity) bool {
		_, ok := lookup[identity.NodeID]
		return ok
	}
}

// HasRole matches identities with one of the given roles.
func HasRole(roles ...string) flow.IdentityFilter {
	lookup := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		lookup[role] = struct{}{}
	}
	return func(identity *flow.Identity) bool {
		_, ok := lookup[identity.Role]
		return ok
	}
}

// Not inverts the wrapped filter.
func Not(f flow.IdentityFilter) flow.IdentityFilter {
	return func(identity *flow.Identity) bool {
		return !f(identity)
	}
}
