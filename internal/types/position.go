package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

type PoolConfig struct {
	PoolID    Identity
	LowerTick int32
	UpperTick int32
	Liquidity sdkmath.Uint
}

// HonoraryPosition is the fee-accruing position owned by the program on behalf of a pool.
type HonoraryPosition struct {
	Key         Identity
	Pool        PoolConfig
	QuoteMint   Identity
	BaseMint    Identity
	Creator     Identity
	IsActive    bool
	CreatedAt   time.Time
	PolicyKey   Identity
	ProgressKey Identity
}

func (c PoolConfig) Validate() error {
	if c.PoolID.IsZero() {
		return NewErrorWithMsg(InvalidPoolConfig, "pool id is empty")
	}
	if c.LowerTick >= c.UpperTick {
		return NewErrorWithMsg(InvalidPoolConfig, "lower tick %d must be below upper tick %d", c.LowerTick, c.UpperTick)
	}
	if c.Liquidity.IsNil() || c.Liquidity.IsZero() {
		return NewErrorWithMsg(InvalidPoolConfig, "liquidity must be positive")
	}
	return nil
}
