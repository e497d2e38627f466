package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/tracing"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/internal/utils/poller"
)

// DistributionRun summarises the cranks of one RunDistribution call.
type DistributionRun struct {
	Epoch      uint64
	Pages      int
	Paid       uint64
	Settlement *types.Settlement
}

// RunDistribution cranks pool page by page from the persisted cursor until the epoch completes.
// When no epoch is in progress it opens one with the fees pending at the fee source.
func (s *Service) RunDistribution(ctx context.Context, poolID types.Identity) (*DistributionRun, error) {
	state, err := s.GetPositionState(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !state.Position.IsActive {
		return nil, types.NewErrorWithMsg(types.PositionNotActive, "honorary position of pool %s is not active", poolID)
	}

	progress := state.Progress
	pageSize := s.cfg.Crank.PageSize
	var (
		fee            types.HarvestedFee
		epoch          uint64
		totalInvestors uint32
		totalLocked    uint64
	)

	if crank.StateOf(progress) == types.EpochStateInEpoch {
		// resumed pages are read from the snapshot the epoch was opened with
		epoch = progress.Epoch
		totalInvestors = progress.TotalInvestors
		totalLocked = progress.TotalLockedForEpoch
	} else {
		if err := crank.CanOpenEpoch(progress, s.clock.Now()); err != nil {
			return nil, err
		}
		if err := s.checkClaimsSettled(ctx, poolID); err != nil {
			return nil, err
		}

		fee, err = s.fees.PendingFees(ctx, poolID)
		if err != nil {
			return nil, types.NewInternalServiceError(err)
		}
		epoch = progress.Epoch + 1
		snapshot, err := s.ledger.GetEpochSnapshot(ctx, poolID, epoch)
		if err != nil {
			return nil, types.NewInternalServiceError(err)
		}
		totalInvestors = snapshot.TotalInvestors
		totalLocked = snapshot.TotalLockedForEpoch
	}

	run := &DistributionRun{}
	cursor := progress.Cursor
	for {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		page, err := s.fetchPage(ctx, poolID, epoch, cursor, pageSize, totalInvestors, totalLocked)
		if err != nil {
			return run, err
		}

		result, err := s.ExecuteCrank(ctx, &CrankRequest{
			PoolID:   poolID,
			Page:     page,
			PageSize: pageSize,
			Fee:      fee,
		})
		if err != nil {
			return run, err
		}
		// only the opening crank claims
		fee = types.HarvestedFee{}

		run.Epoch = result.Progress.Epoch
		run.Pages++
		run.Paid += result.TotalPaid()
		cursor = result.Progress.Cursor

		if result.Settlement != nil {
			run.Settlement = result.Settlement
			return run, nil
		}
	}
}

func (s *Service) fetchPage(
	ctx context.Context,
	poolID types.Identity,
	epoch uint64,
	start, limit, totalInvestors uint32,
	totalLocked uint64,
) (types.InvestorPage, error) {
	if totalInvestors == 0 {
		return types.InvestorPage{TotalLockedForEpoch: totalLocked}, nil
	}

	page, err := s.ledger.GetInvestorPage(ctx, poolID, epoch, start, limit)
	if err != nil {
		if types.IsErrorCode(err, types.InvalidInvestorData) {
			return types.InvestorPage{}, err
		}
		return types.InvestorPage{}, types.NewInternalServiceError(err)
	}
	if page.TotalInvestors != totalInvestors || page.TotalLockedForEpoch != totalLocked {
		return types.InvestorPage{}, types.NewErrorWithMsg(
			types.InvalidInvestorData,
			"ledger page totals (%d locked, %d investors) differ from the epoch snapshot (%d locked, %d investors)",
			page.TotalLockedForEpoch, page.TotalInvestors, totalLocked, totalInvestors,
		)
	}
	return page, nil
}

// checkClaimsSettled holds the next epoch back while a fee claim is unsettled, since the
// fee source still reports the unclaimed quote as pending.
func (s *Service) checkClaimsSettled(ctx context.Context, poolID types.Identity) error {
	count, err := s.db.CountPendingTransfers(ctx, poolID, types.InstructionFeeClaim)
	if err != nil {
		return types.NewInternalServiceError(
			fmt.Errorf("failed to count pending fee claims of pool %s: %w", poolID, err),
		)
	}
	if count > 0 {
		return types.NewErrorWithMsg(
			types.DistributionTooEarly,
			"%d fee claims of pool %s are not settled yet", count, poolID,
		)
	}
	return nil
}

func (s *Service) StartDistributionPoller(ctx context.Context) {
	distributionPoller := poller.NewPollerWithClock(
		s.clock,
		"distribution",
		s.cfg.Poller.DistributionInterval,
		metrics.RecordPollerDuration("distribution", s.DistributeAll),
	)
	go distributionPoller.Start(ctx)
}

// DistributeAll runs the distribution of every managed pool, at most
// MaxConcurrentPositions at a time. One failing pool does not stop the others.
func (s *Service) DistributeAll(ctx context.Context) error {
	pools, err := s.managedPools(ctx)
	if err != nil {
		return err
	}

	var (
		g       errgroup.Group
		results = make([]error, len(pools))
	)
	g.SetLimit(s.cfg.Crank.MaxConcurrentPositions)

	for i, poolID := range pools {
		g.Go(func() error {
			poolCtx := tracing.InjectTraceIDWithFields(ctx, map[string]any{"pool_id": poolID.String()})
			results[i] = s.distributePool(poolCtx, poolID)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(results...)
}

func (s *Service) distributePool(ctx context.Context, poolID types.Identity) error {
	log := log.Ctx(ctx)

	run, err := s.RunDistribution(ctx, poolID)
	switch {
	case types.IsErrorCode(err, types.DistributionTooEarly), types.IsErrorCode(err, types.PositionNotActive):
		log.Debug().Err(err).Msg("Skipping distribution")
		return nil
	case err != nil:
		log.Error().Err(err).Msg("Distribution failed")
		return fmt.Errorf("distribution of pool %s failed: %w", poolID, err)
	}

	event := log.Info().
		Uint64("epoch", run.Epoch).
		Int("pages", run.Pages).
		Uint64("payout_total", run.Paid)
	if run.Settlement != nil {
		event = event.Uint64("creator_remainder", run.Settlement.CreatorRemainder)
	}
	event.Msg("Distribution completed")
	return nil
}

// managedPools returns the configured pools, or every active position when none are configured.
func (s *Service) managedPools(ctx context.Context) ([]types.Identity, error) {
	if len(s.cfg.Crank.Pools) > 0 {
		return s.cfg.Crank.PoolKeys(), nil
	}

	positions, err := s.db.FindActivePositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find active positions: %w", err)
	}
	pools := make([]types.Identity, len(positions))
	for i, position := range positions {
		pools[i] = position.PoolID
	}
	return pools, nil
}
