package model

import (
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type HonoraryPositionDocument struct {
	Key         types.Identity `bson:"_id"` // Primary key, derived from the pool
	PoolID      types.Identity `bson:"pool_id"`
	LowerTick   int32          `bson:"lower_tick"`
	UpperTick   int32          `bson:"upper_tick"`
	Liquidity   string         `bson:"liquidity"`
	QuoteMint   types.Identity `bson:"quote_mint"`
	BaseMint    types.Identity `bson:"base_mint"`
	Creator     types.Identity `bson:"creator"`
	IsActive    bool           `bson:"is_active"`
	PolicyKey   types.Identity `bson:"policy_key"`
	ProgressKey types.Identity `bson:"progress_key"`
	CreatedAt   time.Time      `bson:"created_at"`
}

func FromHonoraryPosition(p *types.HonoraryPosition) *HonoraryPositionDocument {
	return &HonoraryPositionDocument{
		Key:         p.Key,
		PoolID:      p.Pool.PoolID,
		LowerTick:   p.Pool.LowerTick,
		UpperTick:   p.Pool.UpperTick,
		Liquidity:   p.Pool.Liquidity.String(),
		QuoteMint:   p.QuoteMint,
		BaseMint:    p.BaseMint,
		Creator:     p.Creator,
		IsActive:    p.IsActive,
		PolicyKey:   p.PolicyKey,
		ProgressKey: p.ProgressKey,
		CreatedAt:   p.CreatedAt,
	}
}

func (d *HonoraryPositionDocument) ToHonoraryPosition() (*types.HonoraryPosition, error) {
	liquidity, err := sdkmath.ParseUint(d.Liquidity)
	if err != nil {
		return nil, err
	}
	return &types.HonoraryPosition{
		Key: d.Key,
		Pool: types.PoolConfig{
			PoolID:    d.PoolID,
			LowerTick: d.LowerTick,
			UpperTick: d.UpperTick,
			Liquidity: liquidity,
		},
		QuoteMint:   d.QuoteMint,
		BaseMint:    d.BaseMint,
		Creator:     d.Creator,
		IsActive:    d.IsActive,
		PolicyKey:   d.PolicyKey,
		ProgressKey: d.ProgressKey,
		CreatedAt:   d.CreatedAt,
	}, nil
}
