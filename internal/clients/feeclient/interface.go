package feeclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

//go:generate mockery --name=FeeInterface --output=../../../testutil/mocks --outpkg=mocks --filename=mock_fee_client.go
type FeeInterface interface {
	// PendingFees reports the fees accrued to the honorary position of pool since the last claim.
	PendingFees(ctx context.Context, poolID types.Identity) (types.HarvestedFee, error)
	// Claim moves the claimed quote into the program treasury. It is idempotent by instruction ID.
	Claim(ctx context.Context, instruction types.TransferInstruction) error
}
