package types

import "time"

// EpochDuration is the minimum time between two epoch openings.
const EpochDuration = 24 * time.Hour

type EpochState string

const (
	EpochStateIdle     EpochState = "idle"
	EpochStateInEpoch  EpochState = "in_epoch"
	EpochStateComplete EpochState = "epoch_complete"
)

func (s EpochState) String() string {
	return string(s)
}

// DistributionProgress is the persisted crank state of one position.
// Every field except TotalInvestorAllocationY0, Epoch and Version is reset when
// an epoch opens. PendingQuote is folded into the new EpochQuotePool and zeroed.
type DistributionProgress struct {
	// EpochStartTime is a unix timestamp in seconds, 0 when no epoch was ever opened.
	EpochStartTime            int64
	Cursor                    uint32
	DailyDistributedQuote     uint64
	CarryOverDust             uint64
	TotalInvestorAllocationY0 uint64

	Epoch               uint64
	EpochQuotePool      uint64
	EligibleBps         uint16
	InvestorQuota       uint64
	TotalLockedForEpoch uint64
	TotalInvestors      uint32
	LockedSeen          uint64
	CappedQuote         uint64
	EpochClosed         bool
	CreatorRemainder    uint64
	PendingQuote        uint64

	Version uint64
}

func NewDistributionProgress(y0 uint64) DistributionProgress {
	return DistributionProgress{TotalInvestorAllocationY0: y0}
}

func (p DistributionProgress) EpochStartedAt() time.Time {
	return time.Unix(p.EpochStartTime, 0).UTC()
}

// NextEpochAt returns the earliest time the next epoch may open.
func (p DistributionProgress) NextEpochAt() time.Time {
	if p.EpochStartTime == 0 {
		return time.Time{}
	}
	return p.EpochStartedAt().Add(EpochDuration)
}
