package crank

import (
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func StateOf(p types.DistributionProgress) types.EpochState {
	switch {
	case p.EpochStartTime == 0:
		return types.EpochStateIdle
	case p.EpochClosed:
		return types.EpochStateComplete
	default:
		return types.EpochStateInEpoch
	}
}

// CanOpenEpoch reports whether a new epoch may open at now.
func CanOpenEpoch(p types.DistributionProgress, now time.Time) error {
	if p.EpochStartTime == 0 {
		return nil
	}
	next := p.NextEpochAt()
	if now.Before(next) {
		return types.NewErrorWithMsg(
			types.DistributionTooEarly,
			"next epoch opens at %s, %s from now", next.Format(time.RFC3339), next.Sub(now).Round(time.Second),
		)
	}
	return nil
}

// openEpoch resets the epoch-scoped fields and pins the epoch totals from page.
// The quote pool is the fee claimed on this crank plus quote deferred from the previous epoch.
func openEpoch(
	policy types.PolicyConfig,
	p types.DistributionProgress,
	page types.InvestorPage,
	fee types.HarvestedFee,
	now time.Time,
) (types.DistributionProgress, error) {
	pool, err := checkedAdd(fee.QuoteAmount, p.PendingQuote)
	if err != nil {
		return p, err
	}
	epoch, err := checkedAdd(p.Epoch, 1)
	if err != nil {
		return p, err
	}

	y0 := p.TotalInvestorAllocationY0
	if y0 == 0 {
		y0 = page.TotalLockedForEpoch
	}

	next := types.DistributionProgress{
		EpochStartTime:            now.Unix(),
		TotalInvestorAllocationY0: y0,
		Epoch:                     epoch,
		EpochQuotePool:            pool,
		TotalLockedForEpoch:       page.TotalLockedForEpoch,
		TotalInvestors:            page.TotalInvestors,
		Version:                   p.Version,
	}

	eligible, err := EligibleBps(policy.InvestorFeeShareBps, next.TotalLockedForEpoch, next.TotalInvestorAllocationY0)
	if err != nil {
		return p, err
	}
	quota, err := mulDiv(pool, uint64(eligible), uint64(types.MaxBasisPoints))
	if err != nil {
		return p, err
	}
	next.EligibleBps = eligible
	next.InvestorQuota = quota
	return next, nil
}

func checkCursor(p types.DistributionProgress, page types.InvestorPage) error {
	if page.StartIndex != p.Cursor {
		return types.NewErrorWithMsg(
			types.CursorMismatch,
			"page starts at %d, cursor is at %d", page.StartIndex, p.Cursor,
		)
	}
	if page.TotalLockedForEpoch != p.TotalLockedForEpoch || page.TotalInvestors != p.TotalInvestors {
		return types.NewErrorWithMsg(
			types.InvalidInvestorData,
			"page totals (%d locked, %d investors) differ from epoch totals (%d locked, %d investors)",
			page.TotalLockedForEpoch, page.TotalInvestors, p.TotalLockedForEpoch, p.TotalInvestors,
		)
	}
	return nil
}
