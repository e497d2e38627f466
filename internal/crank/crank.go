package crank

import (
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type Input struct {
	Policy   types.PolicyConfig
	Progress types.DistributionProgress
	Page     types.InvestorPage
	PageSize uint32
	Fee      types.HarvestedFee
	Now      time.Time
}

type Result struct {
	// Progress is the state to commit. Version is left for the store to bump.
	Progress types.DistributionProgress
	// Opened is set when this crank opened a new epoch and claimed Fee into its pool.
	Opened bool
	// Deferred is quote claimed on a continuation page, rolled into the next epoch's pool.
	Deferred uint64
	Payouts  []types.Payout
	// Settlement is set when this crank completed the epoch.
	Settlement *types.Settlement
}

func (r *Result) TotalPaid() uint64 {
	var total uint64
	for _, p := range r.Payouts {
		total += p.Amount
	}
	return total
}

// Execute runs one crank over a page of investors. It is pure: on error the
// input progress is untouched and nothing must be committed.
func Execute(in Input) (*Result, error) {
	if err := CheckQuoteOnly(in.Fee); err != nil {
		return nil, err
	}
	if err := validatePage(in.Page, in.PageSize); err != nil {
		return nil, err
	}

	result := &Result{}
	next := in.Progress
	switch StateOf(in.Progress) {
	case types.EpochStateInEpoch:
		if err := checkCursor(next, in.Page); err != nil {
			return nil, err
		}
		pending, err := checkedAdd(next.PendingQuote, in.Fee.QuoteAmount)
		if err != nil {
			return nil, err
		}
		next.PendingQuote = pending
		result.Deferred = in.Fee.QuoteAmount
	default:
		if in.Page.StartIndex != 0 {
			return nil, types.NewErrorWithMsg(
				types.CursorMismatch,
				"page starts at %d but no epoch is open", in.Page.StartIndex,
			)
		}
		if err := CanOpenEpoch(next, in.Now); err != nil {
			return nil, err
		}
		opened, err := openEpoch(in.Policy, next, in.Page, in.Fee, in.Now)
		if err != nil {
			return nil, err
		}
		next = opened
		result.Opened = true
	}

	if len(in.Page.Records) == 0 && next.Cursor < next.TotalInvestors {
		return nil, types.NewErrorWithMsg(types.InvalidInvestorData, "empty page with %d investors left", next.TotalInvestors-next.Cursor)
	}
	end := uint64(next.Cursor) + uint64(len(in.Page.Records))
	if end > uint64(next.TotalInvestors) {
		return nil, types.NewErrorWithMsg(
			types.InvalidInvestorData,
			"page ends at %d, past the %d investors of the epoch", end, next.TotalInvestors,
		)
	}

	payouts, err := payPage(in.Policy, &next, in.Page.Records)
	if err != nil {
		return nil, err
	}
	next.Cursor = uint32(end)
	result.Payouts = payouts

	if next.Cursor == next.TotalInvestors {
		settlement, err := closeEpoch(&next)
		if err != nil {
			return nil, err
		}
		result.Settlement = settlement
	}

	result.Progress = next
	return result, nil
}

func validatePage(page types.InvestorPage, pageSize uint32) error {
	if pageSize == 0 {
		return types.NewErrorWithMsg(types.InvalidInvestorData, "page size must be positive")
	}
	if uint64(len(page.Records)) > uint64(pageSize) {
		return types.NewErrorWithMsg(
			types.InvalidInvestorData,
			"page holds %d records, above the page size %d", len(page.Records), pageSize,
		)
	}
	for i, rec := range page.Records {
		if rec.Identity.IsZero() {
			return types.NewErrorWithMsg(types.InvalidInvestorData, "record %d has no destination", page.StartIndex+uint32(i))
		}
	}
	return nil
}

// closeEpoch settles the creator remainder. Everything not paid to investors,
// including dust and capped quote, goes to the creator.
func closeEpoch(p *types.DistributionProgress) (*types.Settlement, error) {
	remainder, err := checkedSub(p.EpochQuotePool, p.DailyDistributedQuote)
	if err != nil {
		return nil, err
	}
	p.EpochClosed = true
	p.CreatorRemainder = remainder
	return &types.Settlement{
		Epoch:                 p.Epoch,
		EpochQuotePool:        p.EpochQuotePool,
		DailyDistributedQuote: p.DailyDistributedQuote,
		CarryOverDust:         p.CarryOverDust,
		CappedQuote:           p.CappedQuote,
		CreatorRemainder:      remainder,
	}, nil
}
