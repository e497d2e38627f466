package cli

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
	"github.com/kyolabs/honorary-fee-crank/internal/services"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func InitPositionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-position",
		Short: "Creates the honorary position of a pool with the default policy",
		Args:  cobra.ExactArgs(0),
		RunE:  initPosition,
	}

	cmd.Flags().String("pool", "", "pool identity")
	cmd.Flags().String("quote-mint", "", "quote mint identity")
	cmd.Flags().String("base-mint", "", "base mint identity")
	cmd.Flags().Int32("lower-tick", 0, "lower tick of the position range")
	cmd.Flags().Int32("upper-tick", 0, "upper tick of the position range")
	cmd.Flags().String("liquidity", "", "position liquidity")
	cmd.Flags().String("initializer", "", "identity that becomes the policy authority")
	cmd.Flags().String("creator", "", "identity receiving the creator remainder (default initializer)")
	cmd.Flags().Uint64("y0", 0, "total investor allocation at TGE, 0 takes the first epoch's locked total")
	for _, name := range []string{"pool", "quote-mint", "base-mint", "liquidity", "initializer"} {
		_ = cmd.MarkFlagRequired(name)
	}
	addPublishEventsFlag(cmd)

	return cmd
}

func initPosition(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	req := &services.InitializePositionRequest{}
	var err error
	if req.Pool.PoolID, err = identityFlag(cmd, "pool"); err != nil {
		return err
	}
	if req.QuoteMint, err = identityFlag(cmd, "quote-mint"); err != nil {
		return err
	}
	if req.BaseMint, err = identityFlag(cmd, "base-mint"); err != nil {
		return err
	}
	if req.Initializer, err = identityFlag(cmd, "initializer"); err != nil {
		return err
	}
	if req.Creator, err = identityFlag(cmd, "creator"); err != nil {
		return err
	}
	if req.Pool.LowerTick, err = cmd.Flags().GetInt32("lower-tick"); err != nil {
		return err
	}
	if req.Pool.UpperTick, err = cmd.Flags().GetInt32("upper-tick"); err != nil {
		return err
	}
	if req.TotalInvestorAllocationY0, err = cmd.Flags().GetUint64("y0"); err != nil {
		return err
	}
	liquidity, err := cmd.Flags().GetString("liquidity")
	if err != nil {
		return err
	}
	if req.Pool.Liquidity, err = sdkmath.ParseUint(liquidity); err != nil {
		return types.NewErrorWithMsg(types.InvalidPoolConfig, "invalid liquidity %q: %v", liquidity, err)
	}

	service, _, cleanup, err := setupOneShot(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := service.InitializePosition(ctx, req)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Stringer("position", state.Position.Key).
		Stringer("policy", state.Position.PolicyKey).
		Stringer("progress", state.Position.ProgressKey).
		Msg("position created")
	fmt.Fprintln(cmd.OutOrStdout(), state.Position.Key)
	return nil
}
