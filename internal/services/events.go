package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

// emitEvent publishes ev after the state it describes is committed.
// A publish failure does not undo the commit, it is only logged.
func (s *Service) emitEvent(ctx context.Context, ev *types.Event) {
	if err := s.publisher.PublishEvent(ctx, ev); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_id", ev.ID).
			Stringer("event_type", ev.Type).
			Stringer("pool_id", ev.PoolID).
			Msg("failed to emit event")
	}
}

func (s *Service) emitCrankEvents(ctx context.Context, poolID types.Identity, startIndex uint32, fee types.HarvestedFee, result *crank.Result) {
	now := s.clock.Now()
	progress := result.Progress

	if fee.QuoteAmount > 0 {
		s.emitEvent(ctx, types.NewEvent(
			types.EventQuoteFeesClaimed, poolID, progress.Epoch, now,
			types.QuoteFeesClaimedPayload{
				Amount:         fee.QuoteAmount,
				EpochQuotePool: progress.EpochQuotePool,
				Deferred:       !result.Opened,
			},
		))
	}

	var dust, capped uint64
	for _, p := range result.Payouts {
		switch p.Status {
		case types.PayoutStatusDust:
			dust += p.RawAmount
		case types.PayoutStatusCapped:
			capped += p.RawAmount - p.Amount
		}
	}
	s.emitEvent(ctx, types.NewEvent(
		types.EventInvestorPayoutPage, poolID, progress.Epoch, now,
		types.InvestorPayoutPagePayload{
			StartIndex:         startIndex,
			InvestorsProcessed: uint32(len(result.Payouts)),
			TotalPayout:        result.TotalPaid(),
			DustWithheld:       dust,
			CappedQuote:        capped,
		},
	))

	if settlement := result.Settlement; settlement != nil {
		s.emitEvent(ctx, types.NewEvent(
			types.EventCreatorPayoutDayClosed, poolID, settlement.Epoch, now,
			types.CreatorPayoutDayClosedPayload{
				DailyTotalClaimed: settlement.EpochQuotePool,
				InvestorShare:     settlement.DailyDistributedQuote,
				CreatorShare:      settlement.CreatorRemainder,
				CarryOver:         settlement.CarryOverDust,
			},
		))
	}
}
