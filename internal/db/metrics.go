package db

import (
	"context"
	"time"

	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewPosition(
	ctx context.Context,
	position *model.HonoraryPositionDocument,
	policy *model.PolicyDocument,
	progress *model.ProgressDocument,
) error {
	return d.run("SaveNewPosition", func() error {
		return d.db.SaveNewPosition(ctx, position, policy, progress)
	})
}

func (d *DbWithMetrics) GetPosition(ctx context.Context, positionKey types.Identity) (result *model.HonoraryPositionDocument, err error) {
	//nolint:errcheck
	d.run("GetPosition", func() error {
		result, err = d.db.GetPosition(ctx, positionKey)
		return err
	})
	return
}

func (d *DbWithMetrics) FindActivePositions(ctx context.Context) (result []model.HonoraryPositionDocument, err error) {
	//nolint:errcheck
	d.run("FindActivePositions", func() error {
		result, err = d.db.FindActivePositions(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SetPositionActive(ctx context.Context, positionKey types.Identity, active bool) error {
	return d.run("SetPositionActive", func() error {
		return d.db.SetPositionActive(ctx, positionKey, active)
	})
}

func (d *DbWithMetrics) GetPolicy(ctx context.Context, policyKey types.Identity) (result *model.PolicyDocument, err error) {
	//nolint:errcheck
	d.run("GetPolicy", func() error {
		result, err = d.db.GetPolicy(ctx, policyKey)
		return err
	})
	return
}

func (d *DbWithMetrics) ReplacePolicy(ctx context.Context, policy *model.PolicyDocument, expectedAuthority types.Identity) error {
	return d.run("ReplacePolicy", func() error {
		return d.db.ReplacePolicy(ctx, policy, expectedAuthority)
	})
}

func (d *DbWithMetrics) GetProgress(ctx context.Context, progressKey types.Identity) (result *model.ProgressDocument, err error) {
	//nolint:errcheck
	d.run("GetProgress", func() error {
		result, err = d.db.GetProgress(ctx, progressKey)
		return err
	})
	return
}

func (d *DbWithMetrics) CommitCrank(ctx context.Context, commit *CrankCommit) error {
	return d.run("CommitCrank", func() error {
		return d.db.CommitCrank(ctx, commit)
	})
}

func (d *DbWithMetrics) FindPendingTransfers(ctx context.Context, limit int64) (result []model.TransferDocument, err error) {
	//nolint:errcheck
	d.run("FindPendingTransfers", func() error {
		result, err = d.db.FindPendingTransfers(ctx, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) CountPendingTransfers(
	ctx context.Context, poolID types.Identity, kind types.InstructionKind,
) (result int64, err error) {
	//nolint:errcheck
	d.run("CountPendingTransfers", func() error {
		result, err = d.db.CountPendingTransfers(ctx, poolID, kind)
		return err
	})
	return
}

func (d *DbWithMetrics) MarkTransferSettled(ctx context.Context, id string, settledAt time.Time) error {
	return d.run("MarkTransferSettled", func() error {
		return d.db.MarkTransferSettled(ctx, id, settledAt)
	})
}

func (d *DbWithMetrics) MarkTransferFailed(ctx context.Context, id string, reason string, maxAttempts int) error {
	return d.run("MarkTransferFailed", func() error {
		return d.db.MarkTransferFailed(ctx, id, reason, maxAttempts)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and failure status of the function
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
