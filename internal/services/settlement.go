package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/observability/metrics"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
	"github.com/kyolabs/honorary-fee-crank/internal/utils/poller"
)

func (s *Service) StartSettlementPoller(ctx context.Context) {
	settlementPoller := poller.NewPollerWithClock(
		s.clock,
		"settlement",
		s.cfg.Poller.SettlementInterval,
		metrics.RecordPollerDuration("settlement", func(ctx context.Context) error {
			_, err := s.SettleTransfers(ctx)
			return err
		}),
	)
	go settlementPoller.Start(ctx)
}

// SettleTransfers executes pending outbox instructions in commit order and returns how many settled.
// After a failure the remaining instructions of that pool wait for the next round.
func (s *Service) SettleTransfers(ctx context.Context) (int, error) {
	pending, err := s.db.FindPendingTransfers(ctx, s.cfg.Poller.SettlementBatchLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to find pending transfers: %w", err)
	}

	settled := 0
	blocked := make(map[types.Identity]bool)
	for _, doc := range pending {
		if err := ctx.Err(); err != nil {
			return settled, err
		}

		instruction := doc.ToInstruction()
		if blocked[instruction.PoolID] {
			continue
		}

		if err := s.executeInstruction(ctx, instruction); err != nil {
			blocked[instruction.PoolID] = true
			metrics.RecordSettlement(instruction.Kind.String(), true)
			log.Ctx(ctx).Warn().
				Err(err).
				Str("instruction_id", instruction.ID).
				Int("attempt", doc.Attempts+1).
				Msg("transfer instruction failed")

			if err := s.db.MarkTransferFailed(ctx, instruction.ID, err.Error(), s.cfg.Poller.MaxSettlementAttempts); err != nil {
				return settled, fmt.Errorf("failed to record failed transfer %s: %w", instruction.ID, err)
			}
			continue
		}

		if err := s.db.MarkTransferSettled(ctx, instruction.ID, s.clock.Now().UTC()); err != nil {
			return settled, fmt.Errorf("failed to mark transfer %s settled: %w", instruction.ID, err)
		}
		metrics.RecordSettlement(instruction.Kind.String(), false)
		settled++
	}

	if len(pending) > 0 {
		log.Ctx(ctx).Info().
			Int("pending", len(pending)).
			Int("settled", settled).
			Msg("settlement round finished")
	}
	return settled, nil
}

func (s *Service) executeInstruction(ctx context.Context, instruction types.TransferInstruction) error {
	switch instruction.Kind {
	case types.InstructionFeeClaim:
		return s.fees.Claim(ctx, instruction)
	case types.InstructionInvestorPayout, types.InstructionCreatorRemainder:
		return s.transfers.Transfer(ctx, instruction)
	default:
		return fmt.Errorf("unknown instruction kind %q", instruction.Kind)
	}
}
