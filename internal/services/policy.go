package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

// UpdatePolicy replaces the policy of pool with next when caller is the current authority.
// Changes apply from the next crank. The quota of an epoch already in progress stays pinned.
func (s *Service) UpdatePolicy(
	ctx context.Context, poolID types.Identity, next types.PolicyConfig, caller types.Identity,
) (types.PolicyConfig, error) {
	keys, err := s.deriveKeys(poolID)
	if err != nil {
		return types.PolicyConfig{}, err
	}

	current, err := s.loadPolicy(ctx, keys.policy)
	if err != nil {
		return types.PolicyConfig{}, err
	}

	updated, err := crank.UpdatePolicy(current, next, caller)
	if err != nil {
		return current, err
	}

	now := s.clock.Now()
	doc := model.FromPolicy(keys.policy, poolID, updated, now.UTC())
	if err := s.db.ReplacePolicy(ctx, doc, current.Authority); err != nil {
		if db.IsConcurrentUpdateError(err) {
			return current, types.NewErrorWithMsg(
				types.Unauthorized,
				"policy authority of pool %s changed concurrently", poolID,
			)
		}
		return current, types.NewInternalServiceError(
			fmt.Errorf("failed to replace policy of pool %s: %w", poolID, err),
		)
	}

	log.Ctx(ctx).Info().
		Stringer("pool_id", poolID).
		Uint16("investor_fee_share_bps", updated.InvestorFeeShareBps).
		Uint64("daily_cap_quote", updated.DailyCapQuote).
		Uint64("min_payout_quote", updated.MinPayoutQuote).
		Stringer("authority", updated.Authority).
		Msg("policy updated")

	s.emitEvent(ctx, types.NewEvent(
		types.EventPolicyUpdated, poolID, 0, now,
		types.PolicyUpdatedPayload{
			InvestorFeeShareBps: updated.InvestorFeeShareBps,
			DailyCapQuote:       updated.DailyCapQuote,
			MinPayoutQuote:      updated.MinPayoutQuote,
			Authority:           updated.Authority,
		},
	))

	return updated, nil
}
