package model

import (
	"fmt"

	"github.com/onflow/round-pacemaker/model/flow"
)

// InvalidVoteError indicates that a vote failed structural or signature
// validation. Mirrors flow-go's model.InvalidVoteError (see
// consensus/hotstuff/validator/validator.go's newInvalidVoteError).
type InvalidVoteError struct {
	VoteID flow.Identifier
	Round  uint64
	Err    error
}

func (e InvalidVoteError) Error() string {
	return fmt.Sprintf("invalid vote %s at round %d: %s", e.VoteID, e.Round, e.Err.Error())
}

func (e InvalidVoteError) Unwrap() error {
	return e.Err
}

// IsInvalidVoteError reports whether err is an InvalidVoteError, matching
// the model.IsInvalidVoteError helper style used throughout flow-go's
// consensus/hotstuff package.
func IsInvalidVoteError(err error) bool {
	_, ok := err.(InvalidVoteError)
	return ok
}

// NewInvalidVoteError wraps err as an InvalidVoteError for vote.
func NewInvalidVoteError(vote *Vote, err error) InvalidVoteError {
	return InvalidVoteError{
		VoteID: vote.ID(),
		Round:  vote.Round,
		Err:    err,
	}
}
