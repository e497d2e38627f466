package model

import (
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type ProgressDocument struct {
	Key                       types.Identity `bson:"_id"`
	PoolID                    types.Identity `bson:"pool_id"`
	EpochStartTime            int64          `bson:"epoch_start_time"`
	Cursor                    uint32         `bson:"cursor"`
	DailyDistributedQuote     Quote          `bson:"daily_distributed_quote"`
	CarryOverDust             Quote          `bson:"carry_over_dust"`
	TotalInvestorAllocationY0 Quote          `bson:"total_investor_allocation_y0"`
	Epoch                     uint64         `bson:"epoch"`
	EpochQuotePool            Quote          `bson:"epoch_quote_pool"`
	EligibleBps               uint16         `bson:"eligible_bps"`
	InvestorQuota             Quote          `bson:"investor_quota"`
	TotalLockedForEpoch       Quote          `bson:"total_locked_for_epoch"`
	TotalInvestors            uint32         `bson:"total_investors"`
	LockedSeen                Quote          `bson:"locked_seen"`
	CappedQuote               Quote          `bson:"capped_quote"`
	EpochClosed               bool           `bson:"epoch_closed"`
	CreatorRemainder          Quote          `bson:"creator_remainder"`
	PendingQuote              Quote          `bson:"pending_quote"`
	Version                   uint64         `bson:"version"`
}

func FromProgress(key, pool types.Identity, p types.DistributionProgress) *ProgressDocument {
	return &ProgressDocument{
		Key:                       key,
		PoolID:                    pool,
		EpochStartTime:            p.EpochStartTime,
		Cursor:                    p.Cursor,
		DailyDistributedQuote:     Quote(p.DailyDistributedQuote),
		CarryOverDust:             Quote(p.CarryOverDust),
		TotalInvestorAllocationY0: Quote(p.TotalInvestorAllocationY0),
		Epoch:                     p.Epoch,
		EpochQuotePool:            Quote(p.EpochQuotePool),
		EligibleBps:               p.EligibleBps,
		InvestorQuota:             Quote(p.InvestorQuota),
		TotalLockedForEpoch:       Quote(p.TotalLockedForEpoch),
		TotalInvestors:            p.TotalInvestors,
		LockedSeen:                Quote(p.LockedSeen),
		CappedQuote:               Quote(p.CappedQuote),
		EpochClosed:               p.EpochClosed,
		CreatorRemainder:          Quote(p.CreatorRemainder),
		PendingQuote:              Quote(p.PendingQuote),
		Version:                   p.Version,
	}
}

func (d *ProgressDocument) ToProgress() types.DistributionProgress {
	return types.DistributionProgress{
		EpochStartTime:            d.EpochStartTime,
		Cursor:                    d.Cursor,
		DailyDistributedQuote:     uint64(d.DailyDistributedQuote),
		CarryOverDust:             uint64(d.CarryOverDust),
		TotalInvestorAllocationY0: uint64(d.TotalInvestorAllocationY0),
		Epoch:                     d.Epoch,
		EpochQuotePool:            uint64(d.EpochQuotePool),
		EligibleBps:               d.EligibleBps,
		InvestorQuota:             uint64(d.InvestorQuota),
		TotalLockedForEpoch:       uint64(d.TotalLockedForEpoch),
		TotalInvestors:            d.TotalInvestors,
		LockedSeen:                uint64(d.LockedSeen),
		CappedQuote:               uint64(d.CappedQuote),
		EpochClosed:               d.EpochClosed,
		CreatorRemainder:          uint64(d.CreatorRemainder),
		PendingQuote:              uint64(d.PendingQuote),
		Version:                   d.Version,
	}
}
