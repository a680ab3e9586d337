package committee

import (
	"fmt"

	"github.com/onflow/round-pacemaker/model/flow"
)

// Static is a fixed-membership Replicas implementation: no reconfiguration
// across epochs, consistent with this module's Non-goal of not modeling
// validator-set changes. Quorum threshold is computed once, the classic
// BFT `floor(2n/3) + 1` voting-power bound.
type Static struct {
	self       flow.Identifier
	identities flow.IdentityList
}

var _ Replicas = (*Static)(nil)

// NewStatic builds a fixed committee. self must be present in identities.
func NewStatic(self flow.Identifier, identities flow.IdentityList) (*Static, error) {
	if _, ok := identities.ByNodeID(self); !ok {
		return nil, fmt.Errorf("self identifier %s is not a member of the supplied committee", self)
	}
	return &Static{self: self, identities: identities}, nil
}

func (s *Static) IdentitiesByEpoch(uint64) (flow.IdentityList, error) {
	return s.identities, nil
}

func (s *Static) IdentityByEpoch(_ uint64, participantID flow.Identifier) (*flow.Identity, error) {
	identity, ok := s.identities.ByNodeID(participantID)
	if !ok {
		return nil, fmt.Errorf("unknown participant %s", participantID)
	}
	return identity, nil
}

func (s *Static) WeightThresholdForRound(uint64) (uint64, error) {
	total := s.identities.TotalWeight()
	// Byzantine quorum: smallest weight W such that 3*W > 2*total, i.e.
	// strictly more than 2/3 of total weight.
	return 2*total/3 + 1, nil
}

func (s *Static) Self() flow.Identifier {
	return s.self
}
