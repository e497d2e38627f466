package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the distribution and settlement pollers",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, cleanup, err := buildService(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartPollers(ctx)
	log.Info().
		Dur("distribution_interval", cfg.Poller.DistributionInterval).
		Dur("settlement_interval", cfg.Poller.SettlementInterval).
		Msg("honorary fee crank started")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	return nil
}
