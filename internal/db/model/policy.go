package model

import (
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type PolicyDocument struct {
	Key                 types.Identity `bson:"_id"`
	PoolID              types.Identity `bson:"pool_id"`
	InvestorFeeShareBps uint16         `bson:"investor_fee_share_bps"`
	DailyCapQuote       Quote          `bson:"daily_cap_quote"`
	MinPayoutQuote      Quote          `bson:"min_payout_quote"`
	Authority           types.Identity `bson:"authority"`
	UpdatedAt           time.Time      `bson:"updated_at"`
}

func FromPolicy(key, pool types.Identity, p types.PolicyConfig, updatedAt time.Time) *PolicyDocument {
	return &PolicyDocument{
		Key:                 key,
		PoolID:              pool,
		InvestorFeeShareBps: p.InvestorFeeShareBps,
		DailyCapQuote:       Quote(p.DailyCapQuote),
		MinPayoutQuote:      Quote(p.MinPayoutQuote),
		Authority:           p.Authority,
		UpdatedAt:           updatedAt,
	}
}

func (d *PolicyDocument) ToPolicy() types.PolicyConfig {
	return types.PolicyConfig{
		InvestorFeeShareBps: d.InvestorFeeShareBps,
		DailyCapQuote:       uint64(d.DailyCapQuote),
		MinPayoutQuote:      uint64(d.MinPayoutQuote),
		Authority:           d.Authority,
	}
}
