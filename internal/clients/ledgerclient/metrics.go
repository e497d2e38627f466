package ledgerclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const clientName = "ledger"

type ledgerClientWithMetrics struct {
	ledger LedgerInterface
}

func NewLedgerClientWithMetrics(ledger LedgerInterface) *ledgerClientWithMetrics {
	return &ledgerClientWithMetrics{ledger: ledger}
}

func (l *ledgerClientWithMetrics) GetEpochSnapshot(
	ctx context.Context, poolID types.Identity, epoch uint64,
) (EpochSnapshot, error) {
	return client.RunWithMetrics(clientName, func() (EpochSnapshot, error) {
		return l.ledger.GetEpochSnapshot(ctx, poolID, epoch)
	})
}

func (l *ledgerClientWithMetrics) GetInvestorPage(
	ctx context.Context, poolID types.Identity, epoch uint64, start, limit uint32,
) (types.InvestorPage, error) {
	return client.RunWithMetrics(clientName, func() (types.InvestorPage, error) {
		return l.ledger.GetInvestorPage(ctx, poolID, epoch, start, limit)
	})
}
