package feeclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/clients/client"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const clientName = "fee_source"

type feeClientWithMetrics struct {
	fees FeeInterface
}

func NewFeeClientWithMetrics(fees FeeInterface) *feeClientWithMetrics {
	return &feeClientWithMetrics{fees: fees}
}

func (f *feeClientWithMetrics) PendingFees(ctx context.Context, poolID types.Identity) (types.HarvestedFee, error) {
	return client.RunWithMetrics(clientName, func() (types.HarvestedFee, error) {
		return f.fees.PendingFees(ctx, poolID)
	})
}

func (f *feeClientWithMetrics) Claim(ctx context.Context, instruction types.TransferInstruction) error {
	_, err := client.RunWithMetrics(clientName, func() (struct{}, error) {
		return struct{}{}, f.fees.Claim(ctx, instruction)
	})
	return err
}
