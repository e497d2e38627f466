package cli

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func ShowProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-progress",
		Short: "Prints the position, policy and distribution progress of a pool",
		Args:  cobra.ExactArgs(0),
		RunE:  showProgress,
	}

	cmd.Flags().String("pool", "", "pool identity")
	cmd.Flags().Bool("raw", false, "dump the stored state without formatting")
	_ = cmd.MarkFlagRequired("pool")

	return cmd
}

func showProgress(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	poolID, err := identityFlag(cmd, "pool")
	if err != nil {
		return err
	}
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}

	service, cfg, cleanup, err := setupOneShot(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := service.GetPositionState(ctx, poolID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if raw {
		spew.Fdump(out, state)
		return nil
	}

	p := state.Progress
	quote := func(amount uint64) string {
		return types.FormatQuoteAmount(amount, cfg.Crank.QuoteDecimals)
	}

	fmt.Fprintf(out, "pool               %s\n", poolID)
	fmt.Fprintf(out, "position           %s (active: %t)\n", state.Position.Key, state.Position.IsActive)
	fmt.Fprintf(out, "creator            %s\n", state.Position.Creator)
	fmt.Fprintf(out, "policy             share %d bps, cap %s, min payout %s, authority %s\n",
		state.Policy.InvestorFeeShareBps, quote(state.Policy.DailyCapQuote),
		quote(state.Policy.MinPayoutQuote), state.Policy.Authority)
	fmt.Fprintf(out, "state              %s\n", crank.StateOf(p))
	fmt.Fprintf(out, "epoch              %d\n", p.Epoch)
	if p.EpochStartTime != 0 {
		fmt.Fprintf(out, "epoch started      %s\n", p.EpochStartedAt().Format(time.RFC3339))
		fmt.Fprintf(out, "next epoch         %s\n", p.NextEpochAt().Format(time.RFC3339))
	}
	fmt.Fprintf(out, "cursor             %d / %d\n", p.Cursor, p.TotalInvestors)
	fmt.Fprintf(out, "epoch pool         %s\n", quote(p.EpochQuotePool))
	fmt.Fprintf(out, "investor quota     %s (%d bps)\n", quote(p.InvestorQuota), p.EligibleBps)
	fmt.Fprintf(out, "distributed        %s\n", quote(p.DailyDistributedQuote))
	fmt.Fprintf(out, "dust withheld      %s\n", quote(p.CarryOverDust))
	fmt.Fprintf(out, "capped             %s\n", quote(p.CappedQuote))
	fmt.Fprintf(out, "pending next epoch %s\n", quote(p.PendingQuote))
	if p.EpochClosed {
		fmt.Fprintf(out, "creator remainder  %s\n", quote(p.CreatorRemainder))
	}
	return nil
}
