package model

import (
	"fmt"
	"time"
)

// NewRoundReason explains why RoundState advanced to a new round:
// introduced for monitoring/debug purposes only.
type NewRoundReason uint8

const (
	// QCReady indicates the round transition was driven purely by a QC.
	QCReady NewRoundReason = iota
	// Timeout indicates a TC participated in the round transition.
	Timeout
)

func (r NewRoundReason) String() string {
	switch r {
	case QCReady:
		return "QCReady"
	case Timeout:
		return "TCReady"
	default:
		return "unknown"
	}
}

// NewRoundEvent is emitted whenever RoundState.ProcessCertificates moves
// the current round forward. Events emitted from one RoundState instance
// are guaranteed strictly monotonic in Round.
type NewRoundEvent struct {
	Round   uint64
	Reason  NewRoundReason
	Timeout time.Duration
}

func (e *NewRoundEvent) String() string {
	return fmt.Sprintf("NewRoundEvent: [round: %d, reason: %s, timeout: %s]", e.Round, e.Reason, e.Timeout)
}
