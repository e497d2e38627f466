package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
)

func pendingTransfer(pool types.Identity, kind types.InstructionKind, index uint32, amount uint64, ordinal int) model.TransferDocument {
	return model.NewTransferDocument(types.TransferInstruction{
		ID:          types.InstructionID(pool, 1, kind, index),
		PoolID:      pool,
		Epoch:       1,
		Kind:        kind,
		Destination: testutil.RandomIdentity(),
		Amount:      amount,
	}, ordinal, epochStart)
}

func TestSettleTransfers(t *testing.T) {
	env := newTestEnv(t)
	poolA := testutil.RandomIdentity()
	poolB := testutil.RandomIdentity()

	claimA := pendingTransfer(poolA, types.InstructionFeeClaim, 0, 300_000, 0)
	payoutA := pendingTransfer(poolA, types.InstructionInvestorPayout, 0, 60_000, 1)
	remainderA := pendingTransfer(poolA, types.InstructionCreatorRemainder, 0, 240_000, 2)
	claimB := pendingTransfer(poolB, types.InstructionFeeClaim, 0, 1_000, 0)
	payoutB := pendingTransfer(poolB, types.InstructionInvestorPayout, 0, 500, 1)

	env.db.On("FindPendingTransfers", mock.Anything, int64(100)).
		Return([]model.TransferDocument{claimA, claimB, payoutA, payoutB, remainderA}, nil).Once()

	env.fees.On("Claim", mock.Anything, claimA.ToInstruction()).Return(nil).Once()
	env.fees.On("Claim", mock.Anything, claimB.ToInstruction()).Return(nil).Once()
	env.transfers.On("Transfer", mock.Anything, payoutA.ToInstruction()).Return(errors.New("insufficient funds")).Once()
	env.transfers.On("Transfer", mock.Anything, payoutB.ToInstruction()).Return(nil).Once()

	now := env.clock.Now().UTC()
	for _, id := range []string{claimA.ID, claimB.ID, payoutB.ID} {
		env.db.On("MarkTransferSettled", mock.Anything, id, now).Return(nil).Once()
	}
	env.db.On("MarkTransferFailed", mock.Anything, payoutA.ID, "insufficient funds", 3).Return(nil).Once()

	settled, err := env.svc.SettleTransfers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, settled)

	// pool A stops at its failed payout, the remainder waits for the next round
	env.transfers.AssertNotCalled(t, "Transfer", mock.Anything, remainderA.ToInstruction())
}

func TestSettleTransfers_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.db.On("FindPendingTransfers", mock.Anything, int64(100)).Return(nil, nil).Once()

	settled, err := env.svc.SettleTransfers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, settled)
}

func TestSettlementPoller(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	polled := make(chan struct{}, 1)
	env.db.On("FindPendingTransfers", mock.Anything, int64(100)).
		Run(func(mock.Arguments) { polled <- struct{}{} }).
		Return(nil, nil).Once()

	env.svc.StartSettlementPoller(ctx)
	env.clock.BlockUntil(1)
	env.clock.Advance(time.Second)

	select {
	case <-polled:
	case <-time.After(5 * time.Second):
		t.Fatal("settlement poller did not run")
	}
	cancel()
}
