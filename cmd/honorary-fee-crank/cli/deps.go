package cli

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/feeclient"
	"github.com/kyolabs/honorary-fee-crank/internal/clients/ledgerclient"
	"github.com/kyolabs/honorary-fee-crank/internal/clients/transferclient"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/db"
	dbmodel "github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/queue"
	"github.com/kyolabs/honorary-fee-crank/internal/services"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const publishEventsFlag = "publish-events"

// buildService wires the service from the loaded config. The returned
// cleanup releases the db connection and the queue.
func buildService(ctx context.Context, cfg *config.Config, publishEvents bool) (*services.Service, func(), error) {
	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return nil, nil, fmt.Errorf("error while setting up db model: %w", err)
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	var dbClient db.DbInterface = db.NewDbWithMetrics(database)

	var fees feeclient.FeeInterface = feeclient.NewClient(&cfg.FeeSource)
	fees = feeclient.NewFeeClientWithMetrics(fees)

	var ledger ledgerclient.LedgerInterface = ledgerclient.NewClient(&cfg.Ledger)
	ledger = ledgerclient.NewLedgerClientWithMetrics(ledger)

	var transfers transferclient.TransferInterface = transferclient.NewClient(&cfg.Transfer)
	transfers = transferclient.NewTransferClientWithMetrics(transfers)

	var (
		publisher queue.EventPublisher = queue.NoopPublisher{}
		qm        *queue.QueueManager
	)
	if publishEvents {
		qm, err = queue.NewQueueManager(&cfg.Queue)
		if err != nil {
			_ = database.Close(ctx)
			return nil, nil, fmt.Errorf("error while creating queue manager: %w", err)
		}
		publisher = qm
	}

	cleanup := func() {
		if qm != nil {
			qm.Shutdown()
		}
		if err := database.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close db client")
		}
	}

	service := services.NewService(cfg, dbClient, fees, ledger, transfers, publisher, clockwork.NewRealClock())
	return service, cleanup, nil
}

func loadConfig() (*config.Config, error) {
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// setupOneShot loads the config and wires the service for commands that run a single operation.
func setupOneShot(cmd *cobra.Command) (*services.Service, *config.Config, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	publishEvents, err := publishEventsEnabled(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	service, cleanup, err := buildService(cmd.Context(), cfg, publishEvents)
	if err != nil {
		return nil, nil, nil, err
	}
	return service, cfg, cleanup, nil
}

// addPublishEventsFlag lets a one-shot command opt in to publishing. Without it a no-op publisher is used.
func addPublishEventsFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(publishEventsFlag, false, "publish distribution events to the queue")
}

func publishEventsEnabled(cmd *cobra.Command) (bool, error) {
	if cmd.Flags().Lookup(publishEventsFlag) == nil {
		return false, nil
	}
	return cmd.Flags().GetBool(publishEventsFlag)
}

func identityFlag(cmd *cobra.Command, name string) (types.Identity, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.Identity{}, err
	}
	if value == "" {
		return types.Identity{}, nil
	}
	key, err := types.ParseIdentity(value)
	if err != nil {
		return types.Identity{}, fmt.Errorf("--%s: %w", name, err)
	}
	return key, nil
}
