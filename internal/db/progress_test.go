//go:build integration

package db_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
)

func TestCommitCrank(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	fixture := newPositionFixture(t)
	require.NoError(t, testDB.SaveNewPosition(ctx, fixture.position, fixture.policy, fixture.progress))

	pool := fixture.position.PoolID
	createdAt := time.Now().UTC().Truncate(time.Millisecond)

	next := *fixture.progress
	next.EpochStartTime = createdAt.Unix()
	next.Cursor = 2
	next.Epoch = 1
	next.Version = fixture.progress.Version + 1

	transfers := []model.TransferDocument{
		model.NewTransferDocument(types.TransferInstruction{
			ID:          types.InstructionID(pool, 1, types.InstructionFeeClaim, 0),
			PoolID:      pool,
			Epoch:       1,
			Kind:        types.InstructionFeeClaim,
			Destination: fixture.position.Key,
			Amount:      300_000,
		}, 0, createdAt),
		model.NewTransferDocument(types.TransferInstruction{
			ID:          types.InstructionID(pool, 1, types.InstructionInvestorPayout, 0),
			PoolID:      pool,
			Epoch:       1,
			Kind:        types.InstructionInvestorPayout,
			Destination: testutil.RandomIdentity(),
			Amount:      60_000,
		}, 1, createdAt),
	}

	commit := &db.CrankCommit{
		Progress:        &next,
		ExpectedVersion: fixture.progress.Version,
		ExpectedCursor:  fixture.progress.Cursor,
		Transfers:       transfers,
	}

	t.Run("first commit wins", func(t *testing.T) {
		require.NoError(t, testDB.CommitCrank(ctx, commit))

		progress, err := testDB.GetProgress(ctx, fixture.progress.Key)
		require.NoError(t, err)
		assert.Equal(t, &next, progress)

		pending, err := testDB.FindPendingTransfers(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, transfers, pending)
	})

	t.Run("replayed commit loses the compare and swap", func(t *testing.T) {
		err := testDB.CommitCrank(ctx, commit)
		assert.True(t, db.IsConcurrentUpdateError(err), "got %v", err)

		// nothing from the losing transaction is visible
		pending, err := testDB.FindPendingTransfers(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("duplicate instruction aborts the progress update", func(t *testing.T) {
		after := next
		after.Cursor = 3
		after.Version = next.Version + 1

		err := testDB.CommitCrank(ctx, &db.CrankCommit{
			Progress:        &after,
			ExpectedVersion: next.Version,
			ExpectedCursor:  next.Cursor,
			Transfers:       transfers[:1],
		})
		assert.True(t, db.IsDuplicateKeyError(err), "got %v", err)

		progress, err := testDB.GetProgress(ctx, fixture.progress.Key)
		require.NoError(t, err)
		assert.Equal(t, next.Version, progress.Version)
		assert.Equal(t, uint32(2), progress.Cursor)
	})

	t.Run("amounts above MaxInt64 persist", func(t *testing.T) {
		large := next
		large.Cursor = 3
		large.Version = next.Version + 1
		large.EpochQuotePool = model.Quote(math.MaxUint64)
		large.InvestorQuota = model.Quote(math.MaxUint64 - 1)

		claim := model.NewTransferDocument(types.TransferInstruction{
			ID:          types.InstructionID(pool, 1, types.InstructionFeeClaim, 2),
			PoolID:      pool,
			Epoch:       1,
			Kind:        types.InstructionFeeClaim,
			Destination: fixture.position.Key,
			Amount:      math.MaxUint64,
		}, 0, createdAt.Add(time.Second))

		require.NoError(t, testDB.CommitCrank(ctx, &db.CrankCommit{
			Progress:        &large,
			ExpectedVersion: next.Version,
			ExpectedCursor:  next.Cursor,
			Transfers:       []model.TransferDocument{claim},
		}))

		progress, err := testDB.GetProgress(ctx, fixture.progress.Key)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), progress.ToProgress().EpochQuotePool)
		assert.Equal(t, uint64(math.MaxUint64-1), progress.ToProgress().InvestorQuota)

		pending, err := testDB.FindPendingTransfers(ctx, 10)
		require.NoError(t, err)
		require.Len(t, pending, 3)
		assert.Equal(t, uint64(math.MaxUint64), pending[2].ToInstruction().Amount)
	})
}
