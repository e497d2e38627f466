package types

import "fmt"

type InstructionKind string

const (
	InstructionFeeClaim         InstructionKind = "fee_claim"
	InstructionInvestorPayout   InstructionKind = "investor_payout"
	InstructionCreatorRemainder InstructionKind = "creator_remainder"
)

func (k InstructionKind) String() string {
	return string(k)
}

type InstructionStatus string

const (
	InstructionPending InstructionStatus = "pending"
	InstructionSettled InstructionStatus = "settled"
	InstructionFailed  InstructionStatus = "failed"
)

func (s InstructionStatus) String() string {
	return string(s)
}

// TransferInstruction is a quote movement decided by a committed crank.
// ID is deterministic so executing the same instruction twice is a no-op downstream.
type TransferInstruction struct {
	ID          string
	PoolID      Identity
	Epoch       uint64
	Kind        InstructionKind
	Destination Identity
	Amount      uint64
}

func InstructionID(pool Identity, epoch uint64, kind InstructionKind, index uint32) string {
	return fmt.Sprintf("%s:%d:%s:%d", pool, epoch, kind, index)
}
