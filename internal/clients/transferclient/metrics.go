package transferclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const clientName = "transfer"

type transferClientWithMetrics struct {
	transfers TransferInterface
}

func NewTransferClientWithMetrics(transfers TransferInterface) *transferClientWithMetrics {
	return &transferClientWithMetrics{transfers: transfers}
}

func (t *transferClientWithMetrics) Transfer(ctx context.Context, instruction types.TransferInstruction) error {
	_, err := client.RunWithMetrics(clientName, func() (struct{}, error) {
		return struct{}{}, t.transfers.Transfer(ctx, instruction)
	})
	return err
}
