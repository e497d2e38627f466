package db

import (
	"context"
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

//go:generate mockery --name=DbInterface --output=../../testutil/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// SaveNewPosition stores a position with its policy and progress in one transaction.
	SaveNewPosition(
		ctx context.Context,
		position *model.HonoraryPositionDocument,
		policy *model.PolicyDocument,
		progress *model.ProgressDocument,
	) error
	GetPosition(ctx context.Context, positionKey types.Identity) (*model.HonoraryPositionDocument, error)
	FindActivePositions(ctx context.Context) ([]model.HonoraryPositionDocument, error)
	SetPositionActive(ctx context.Context, positionKey types.Identity, active bool) error
	GetPolicy(ctx context.Context, policyKey types.Identity) (*model.PolicyDocument, error)
	// ReplacePolicy swaps the policy if its authority still matches expectedAuthority.
	ReplacePolicy(ctx context.Context, policy *model.PolicyDocument, expectedAuthority types.Identity) error
	GetProgress(ctx context.Context, progressKey types.Identity) (*model.ProgressDocument, error)
	// CommitCrank writes the new progress and the instructions it produced atomically.
	CommitCrank(ctx context.Context, commit *CrankCommit) error
	FindPendingTransfers(ctx context.Context, limit int64) ([]model.TransferDocument, error)
	CountPendingTransfers(ctx context.Context, poolID types.Identity, kind types.InstructionKind) (int64, error)
	MarkTransferSettled(ctx context.Context, id string, settledAt time.Time) error
	MarkTransferFailed(ctx context.Context, id string, reason string, maxAttempts int) error
}
