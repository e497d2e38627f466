package crank

import "github.com/kyolabs/honorary-fee-crank/internal/types"

// EligibleBps returns min(shareBps, f_locked) where f_locked = floor(10000 * locked / y0) capped at 10000.
func EligibleBps(shareBps uint16, locked, y0 uint64) (uint16, error) {
	if y0 == 0 {
		return 0, nil
	}
	fLocked, err := mulDiv(uint64(types.MaxBasisPoints), locked, y0)
	if err != nil {
		return 0, err
	}
	if fLocked > uint64(types.MaxBasisPoints) {
		fLocked = uint64(types.MaxBasisPoints)
	}
	if uint64(shareBps) < fLocked {
		return shareBps, nil
	}
	return uint16(fLocked), nil
}

// payPage computes the payouts for records and accumulates them into p.
// The caller has already positioned p at the page's start index.
func payPage(policy types.PolicyConfig, p *types.DistributionProgress, records []types.InvestorRecord) ([]types.Payout, error) {
	payouts := make([]types.Payout, 0, len(records))
	for i, rec := range records {
		seen, err := checkedAdd(p.LockedSeen, rec.LockedAmount)
		if err != nil {
			return nil, err
		}
		if seen > p.TotalLockedForEpoch {
			return nil, types.NewErrorWithMsg(
				types.InvalidInvestorData,
				"locked amounts sum to %d, above the epoch total %d", seen, p.TotalLockedForEpoch,
			)
		}
		p.LockedSeen = seen

		payout, err := payInvestor(policy, p, rec)
		if err != nil {
			return nil, err
		}
		payout.Index = p.Cursor + uint32(i)
		payouts = append(payouts, payout)
	}
	return payouts, nil
}

func payInvestor(policy types.PolicyConfig, p *types.DistributionProgress, rec types.InvestorRecord) (types.Payout, error) {
	payout := types.Payout{
		Destination:  rec.Identity,
		LockedAmount: rec.LockedAmount,
		Status:       types.PayoutStatusZero,
	}
	if p.TotalLockedForEpoch == 0 || p.InvestorQuota == 0 || rec.LockedAmount == 0 {
		return payout, nil
	}

	raw, err := mulDiv(p.InvestorQuota, rec.LockedAmount, p.TotalLockedForEpoch)
	if err != nil {
		return payout, err
	}
	payout.RawAmount = raw
	if raw == 0 {
		return payout, nil
	}

	if raw < policy.MinPayoutQuote {
		if p.CarryOverDust, err = checkedAdd(p.CarryOverDust, raw); err != nil {
			return payout, err
		}
		payout.Status = types.PayoutStatusDust
		return payout, nil
	}

	amount := raw
	if !policy.Uncapped() {
		headroom := saturatingSub(policy.DailyCapQuote, p.DailyDistributedQuote)
		if amount > headroom {
			amount = headroom
		}
		// a truncated payout below the floor is withheld entirely
		if amount < raw && amount < policy.MinPayoutQuote {
			amount = 0
		}
	}

	if amount < raw {
		if p.CappedQuote, err = checkedAdd(p.CappedQuote, raw-amount); err != nil {
			return payout, err
		}
		payout.Status = types.PayoutStatusCapped
	} else {
		payout.Status = types.PayoutStatusPaid
	}
	if p.DailyDistributedQuote, err = checkedAdd(p.DailyDistributedQuote, amount); err != nil {
		return payout, err
	}
	payout.Amount = amount
	return payout, nil
}
