package ledgerclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type EpochSnapshot struct {
	TotalLockedForEpoch uint64
	TotalInvestors      uint32
}

//go:generate mockery --name=LedgerInterface --output=../../../testutil/mocks --outpkg=mocks --filename=mock_ledger_client.go
type LedgerInterface interface {
	// GetEpochSnapshot returns the whole-epoch locked total and investor count for pool.
	// The ledger freezes the balances of epoch on the first read and serves them unchanged afterwards.
	GetEpochSnapshot(ctx context.Context, poolID types.Identity, epoch uint64) (EpochSnapshot, error)
	// GetInvestorPage returns up to limit investors of the frozen epoch snapshot starting at start,
	// in the ledger's stable order.
	GetInvestorPage(ctx context.Context, poolID types.Identity, epoch uint64, start, limit uint32) (types.InvestorPage, error)
}
