package cli

import (
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
)

func SetPositionActiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-position-active",
		Short: "Pauses or resumes cranking of a pool",
		Args:  cobra.ExactArgs(0),
		RunE:  setPositionActive,
	}

	cmd.Flags().String("pool", "", "pool identity")
	cmd.Flags().String("caller", "", "policy authority")
	cmd.Flags().Bool("active", true, "whether the position is cranked")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("caller")

	return cmd
}

func setPositionActive(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	poolID, err := identityFlag(cmd, "pool")
	if err != nil {
		return err
	}
	caller, err := identityFlag(cmd, "caller")
	if err != nil {
		return err
	}
	active, err := cmd.Flags().GetBool("active")
	if err != nil {
		return err
	}

	service, _, cleanup, err := setupOneShot(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	return service.SetPositionActive(ctx, poolID, caller, active)
}
