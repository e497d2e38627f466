//go:build integration

package db_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/testutil"
)

type positionFixture struct {
	position *model.HonoraryPositionDocument
	policy   *model.PolicyDocument
	progress *model.ProgressDocument
}

func newPositionFixture(t *testing.T) positionFixture {
	t.Helper()

	programID := testutil.RandomIdentity()
	pool := testutil.RandomIdentity()
	positionKey, err := types.DeriveStateKey(programID, types.SeedHonoraryPosition, pool)
	require.NoError(t, err)
	policyKey, err := types.DeriveStateKey(programID, types.SeedPolicy, pool)
	require.NoError(t, err)
	progressKey, err := types.DeriveStateKey(programID, types.SeedProgress, pool)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Millisecond)
	authority := testutil.RandomIdentity()
	position := &types.HonoraryPosition{
		Key: positionKey,
		Pool: types.PoolConfig{
			PoolID:    pool,
			LowerTick: -10,
			UpperTick: 10,
			Liquidity: sdkmath.NewUintFromString("340282366920938463463374607431768211455"),
		},
		QuoteMint:   testutil.RandomIdentity(),
		BaseMint:    testutil.RandomIdentity(),
		Creator:     authority,
		IsActive:    true,
		PolicyKey:   policyKey,
		ProgressKey: progressKey,
		CreatedAt:   now,
	}

	return positionFixture{
		position: model.FromHonoraryPosition(position),
		policy:   model.FromPolicy(policyKey, pool, types.DefaultPolicy(authority), now),
		progress: model.FromProgress(progressKey, pool, types.NewDistributionProgress(1_000_000)),
	}
}
