package cli

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func CrankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crank",
		Short: "Runs the distribution of one pool, or of every managed pool, once",
		Args:  cobra.ExactArgs(0),
		RunE:  runCrank,
	}

	cmd.Flags().String("pool", "", "pool identity")
	cmd.Flags().Bool("all", false, "crank every managed pool")
	cmd.Flags().Bool("settle", false, "settle pending transfers afterwards")
	cmd.MarkFlagsMutuallyExclusive("pool", "all")
	cmd.MarkFlagsOneRequired("pool", "all")
	addPublishEventsFlag(cmd)

	return cmd
}

func runCrank(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())
	log := log.Ctx(ctx)

	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	settle, err := cmd.Flags().GetBool("settle")
	if err != nil {
		return err
	}
	poolID, err := identityFlag(cmd, "pool")
	if err != nil {
		return err
	}
	if !all && poolID.IsZero() {
		return errors.New("--pool is required")
	}

	service, cfg, cleanup, err := setupOneShot(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if all {
		err = service.DistributeAll(ctx)
	} else {
		run, runErr := service.RunDistribution(ctx, poolID)
		if runErr == nil {
			log.Info().
				Stringer("pool_id", poolID).
				Uint64("epoch", run.Epoch).
				Int("pages", run.Pages).
				Str("payout_total", types.FormatQuoteAmount(run.Paid, cfg.Crank.QuoteDecimals)).
				Bool("epoch_complete", run.Settlement != nil).
				Msg("crank finished")
		}
		err = runErr
	}
	if err != nil {
		return err
	}

	if settle {
		settled, err := service.SettleTransfers(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("settled", settled).Msg("transfers settled")
	}
	return nil
}
