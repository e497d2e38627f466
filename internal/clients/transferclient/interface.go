package transferclient

import (
	"context"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

//go:generate mockery --name=TransferInterface --output=../../../testutil/mocks --outpkg=mocks --filename=mock_transfer_client.go
type TransferInterface interface {
	// Transfer executes a quote transfer out of the program treasury. Repeating an instruction ID is a no-op.
	Transfer(ctx context.Context, instruction types.TransferInstruction) error
}
