package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/crank"
	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type CrankRequest struct {
	PoolID   types.Identity
	Page     types.InvestorPage
	PageSize uint32
	Fee      types.HarvestedFee
}

// ExecuteCrank runs one crank for a page of investors and commits the new progress
// together with the transfers it decided. Nothing is written when it fails.
func (s *Service) ExecuteCrank(ctx context.Context, req *CrankRequest) (*crank.Result, error) {
	result, err := s.executeCrank(ctx, req)
	if err != nil {
		metrics.RecordCrankPage(types.ErrorCodeOf(err).String())
		return nil, err
	}
	metrics.RecordCrankPage("")
	return result, nil
}

func (s *Service) executeCrank(ctx context.Context, req *CrankRequest) (*crank.Result, error) {
	keys, err := s.deriveKeys(req.PoolID)
	if err != nil {
		return nil, err
	}

	position, err := s.loadPosition(ctx, keys.position)
	if err != nil {
		return nil, err
	}
	if !position.IsActive {
		return nil, types.NewErrorWithMsg(types.PositionNotActive, "honorary position of pool %s is not active", req.PoolID)
	}

	policy, err := s.loadPolicy(ctx, keys.policy)
	if err != nil {
		return nil, err
	}
	progress, err := s.loadProgress(ctx, keys.progress)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result, err := crank.Execute(crank.Input{
		Policy:   policy,
		Progress: progress,
		Page:     req.Page,
		PageSize: req.PageSize,
		Fee:      req.Fee,
		Now:      now,
	})
	if err != nil {
		return nil, err
	}

	next := result.Progress
	next.Version = progress.Version + 1
	transfers := buildTransfers(position, req, result, now)

	err = s.db.CommitCrank(ctx, &db.CrankCommit{
		Progress:        model.FromProgress(keys.progress, req.PoolID, next),
		ExpectedVersion: progress.Version,
		ExpectedCursor:  progress.Cursor,
		Transfers:       transfers,
	})
	if err != nil {
		if db.IsConcurrentUpdateError(err) || db.IsDuplicateKeyError(err) {
			return nil, types.NewError(
				types.CursorMismatch,
				fmt.Errorf("page %d of pool %s was already committed: %w", req.Page.StartIndex, req.PoolID, err),
			)
		}
		return nil, types.NewInternalServiceError(
			fmt.Errorf("failed to commit crank for pool %s: %w", req.PoolID, err),
		)
	}
	result.Progress = next

	recordCrankMetrics(result)

	log.Ctx(ctx).Info().
		Stringer("pool_id", req.PoolID).
		Uint64("epoch", next.Epoch).
		Uint32("cursor", next.Cursor).
		Uint32("total_investors", next.TotalInvestors).
		Uint64("payout_total", result.TotalPaid()).
		Bool("opened", result.Opened).
		Bool("closed", result.Settlement != nil).
		Msg("crank committed")

	s.emitCrankEvents(ctx, req.PoolID, req.Page.StartIndex, req.Fee, result)
	return result, nil
}

// buildTransfers turns a crank result into outbox instructions, in the order they must settle.
// The fee claim comes first since payouts are funded from it.
func buildTransfers(
	position *types.HonoraryPosition, req *CrankRequest, result *crank.Result, now time.Time,
) []model.TransferDocument {
	epoch := result.Progress.Epoch
	poolID := req.PoolID
	var transfers []model.TransferDocument
	add := func(kind types.InstructionKind, index uint32, destination types.Identity, amount uint64) {
		instruction := types.TransferInstruction{
			ID:          types.InstructionID(poolID, epoch, kind, index),
			PoolID:      poolID,
			Epoch:       epoch,
			Kind:        kind,
			Destination: destination,
			Amount:      amount,
		}
		transfers = append(transfers, model.NewTransferDocument(instruction, len(transfers), now.UTC()))
	}

	if req.Fee.QuoteAmount > 0 {
		add(types.InstructionFeeClaim, req.Page.StartIndex, position.Key, req.Fee.QuoteAmount)
	}
	for _, payout := range result.Payouts {
		if payout.Amount == 0 {
			continue
		}
		add(types.InstructionInvestorPayout, payout.Index, payout.Destination, payout.Amount)
	}
	if settlement := result.Settlement; settlement != nil && settlement.CreatorRemainder > 0 {
		add(types.InstructionCreatorRemainder, 0, position.Creator, settlement.CreatorRemainder)
	}
	return transfers
}

func recordCrankMetrics(result *crank.Result) {
	for _, payout := range result.Payouts {
		metrics.RecordPayout(payout.Status.String())
	}
	if settlement := result.Settlement; settlement != nil {
		metrics.RecordEpochClosed(settlement.DailyDistributedQuote, settlement.CreatorRemainder)
	}
}
