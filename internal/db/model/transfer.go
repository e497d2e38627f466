package model

import (
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

// TransferDocument is an outbox entry written in the same transaction as the crank that decided it.
type TransferDocument struct {
	ID          string                  `bson:"_id"`
	PoolID      types.Identity          `bson:"pool_id"`
	Epoch       uint64                  `bson:"epoch"`
	Kind        types.InstructionKind   `bson:"kind"`
	Destination types.Identity          `bson:"destination"`
	Amount      Quote                   `bson:"amount"`
	Status      types.InstructionStatus `bson:"status"`
	Attempts    int                     `bson:"attempts"`
	LastError   string                  `bson:"last_error,omitempty"`
	// Ordinal orders the instructions of one commit.
	Ordinal   int        `bson:"ordinal"`
	CreatedAt time.Time  `bson:"created_at"`
	SettledAt *time.Time `bson:"settled_at,omitempty"`
}

func NewTransferDocument(instruction types.TransferInstruction, ordinal int, createdAt time.Time) TransferDocument {
	return TransferDocument{
		ID:          instruction.ID,
		PoolID:      instruction.PoolID,
		Epoch:       instruction.Epoch,
		Kind:        instruction.Kind,
		Destination: instruction.Destination,
		Amount:      Quote(instruction.Amount),
		Status:      types.InstructionPending,
		Ordinal:     ordinal,
		CreatedAt:   createdAt,
	}
}

func (d *TransferDocument) ToInstruction() types.TransferInstruction {
	return types.TransferInstruction{
		ID:          d.ID,
		PoolID:      d.PoolID,
		Epoch:       d.Epoch,
		Kind:        d.Kind,
		Destination: d.Destination,
		Amount:      uint64(d.Amount),
	}
}
