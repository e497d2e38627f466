package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func UpdatePolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-policy",
		Short: "Replaces the distribution policy of a pool",
		Args:  cobra.ExactArgs(0),
		RunE:  updatePolicy,
	}

	cmd.Flags().String("pool", "", "pool identity")
	cmd.Flags().String("caller", "", "current policy authority")
	cmd.Flags().Uint16("investor-fee-share-bps", types.DefaultInvestorFeeShareBps, "investor share of the epoch pool in basis points")
	cmd.Flags().Uint64("daily-cap", types.DefaultDailyCapQuote, "quote paid to investors per epoch, 0 for no cap")
	cmd.Flags().Uint64("min-payout", types.DefaultMinPayoutQuote, "smallest payout sent to an investor")
	cmd.Flags().String("authority", "", "new policy authority (default caller)")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("caller")
	addPublishEventsFlag(cmd)

	return cmd
}

func updatePolicy(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	poolID, err := identityFlag(cmd, "pool")
	if err != nil {
		return err
	}
	caller, err := identityFlag(cmd, "caller")
	if err != nil {
		return err
	}
	authority, err := identityFlag(cmd, "authority")
	if err != nil {
		return err
	}
	if authority.IsZero() {
		authority = caller
	}

	next := types.PolicyConfig{Authority: authority}
	if next.InvestorFeeShareBps, err = cmd.Flags().GetUint16("investor-fee-share-bps"); err != nil {
		return err
	}
	if next.DailyCapQuote, err = cmd.Flags().GetUint64("daily-cap"); err != nil {
		return err
	}
	if next.MinPayoutQuote, err = cmd.Flags().GetUint64("min-payout"); err != nil {
		return err
	}

	service, _, cleanup, err := setupOneShot(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	updated, err := service.UpdatePolicy(ctx, poolID, next, caller)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Stringer("pool_id", poolID).
		Uint16("investor_fee_share_bps", updated.InvestorFeeShareBps).
		Stringer("authority", updated.Authority).
		Msg("policy replaced")
	return nil
}
