package services

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/feeclient"
	"github.com/kyolabs/honorary-fee-crank/internal/clients/ledgerclient"
	"github.com/kyolabs/honorary-fee-crank/internal/clients/transferclient"
	"github.com/kyolabs/honorary-fee-crank/internal/config"
	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/queue"
)

type Service struct {
	cfg       *config.Config
	db        db.DbInterface
	fees      feeclient.FeeInterface
	ledger    ledgerclient.LedgerInterface
	transfers transferclient.TransferInterface
	publisher queue.EventPublisher
	clock     clockwork.Clock
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	fees feeclient.FeeInterface,
	ledger ledgerclient.LedgerInterface,
	transfers transferclient.TransferInterface,
	publisher queue.EventPublisher,
	clock clockwork.Clock,
) *Service {
	return &Service{
		cfg:       cfg,
		db:        db,
		fees:      fees,
		ledger:    ledger,
		transfers: transfers,
		publisher: publisher,
		clock:     clock,
	}
}

// StartPollers launches the distribution and settlement pollers in the background.
func (s *Service) StartPollers(ctx context.Context) {
	s.StartDistributionPoller(ctx)
	s.StartSettlementPoller(ctx)
}
