package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kyolabs/honorary-fee-crank/internal/db"
	"github.com/kyolabs/honorary-fee-crank/internal/db/model"
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type InitializePositionRequest struct {
	Pool      types.PoolConfig
	QuoteMint types.Identity
	BaseMint  types.Identity
	// Creator receives the epoch remainder. Defaults to Initializer.
	Creator     types.Identity
	Initializer types.Identity
	// TotalInvestorAllocationY0 is the investor allocation at TGE. 0 takes it from the first epoch.
	TotalInvestorAllocationY0 uint64
}

// PositionState is everything persisted for one pool.
type PositionState struct {
	Position *types.HonoraryPosition
	Policy   types.PolicyConfig
	Progress types.DistributionProgress
}

func (s *Service) InitializePosition(ctx context.Context, req *InitializePositionRequest) (*PositionState, error) {
	if err := req.Pool.Validate(); err != nil {
		return nil, err
	}
	if req.QuoteMint.IsZero() || req.BaseMint.IsZero() {
		return nil, types.NewErrorWithMsg(types.InvalidPoolConfig, "quote and base mints are required")
	}
	if req.QuoteMint.Equals(req.BaseMint) {
		return nil, types.NewErrorWithMsg(types.InvalidPoolConfig, "quote mint %s equals base mint", req.QuoteMint)
	}
	if req.Initializer.IsZero() {
		return nil, types.NewErrorWithMsg(types.InvalidPolicy, "initializer is empty")
	}

	keys, err := s.deriveKeys(req.Pool.PoolID)
	if err != nil {
		return nil, err
	}

	creator := req.Creator
	if creator.IsZero() {
		creator = req.Initializer
	}

	now := s.clock.Now()
	position := &types.HonoraryPosition{
		Key:         keys.position,
		Pool:        req.Pool,
		QuoteMint:   req.QuoteMint,
		BaseMint:    req.BaseMint,
		Creator:     creator,
		IsActive:    true,
		CreatedAt:   now.UTC(),
		PolicyKey:   keys.policy,
		ProgressKey: keys.progress,
	}
	policy := types.DefaultPolicy(req.Initializer)
	progress := types.NewDistributionProgress(req.TotalInvestorAllocationY0)

	err = s.db.SaveNewPosition(
		ctx,
		model.FromHonoraryPosition(position),
		model.FromPolicy(keys.policy, req.Pool.PoolID, policy, now.UTC()),
		model.FromProgress(keys.progress, req.Pool.PoolID, progress),
	)
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return nil, types.NewErrorWithMsg(
				types.InvalidPoolConfig,
				"honorary position for pool %s already exists", req.Pool.PoolID,
			)
		}
		return nil, types.NewInternalServiceError(
			fmt.Errorf("failed to save honorary position for pool %s: %w", req.Pool.PoolID, err),
		)
	}

	log.Ctx(ctx).Info().
		Stringer("pool_id", req.Pool.PoolID).
		Stringer("position", keys.position).
		Stringer("creator", creator).
		Uint64("y0", req.TotalInvestorAllocationY0).
		Msg("honorary position initialized")

	s.emitEvent(ctx, types.NewEvent(
		types.EventHonoraryPositionInitialized, req.Pool.PoolID, 0, now,
		types.HonoraryPositionInitializedPayload{
			Position:                  keys.position,
			QuoteMint:                 req.QuoteMint,
			BaseMint:                  req.BaseMint,
			TotalInvestorAllocationY0: req.TotalInvestorAllocationY0,
		},
	))

	return &PositionState{
		Position: position,
		Policy:   policy,
		Progress: progress,
	}, nil
}

// SetPositionActive pauses or resumes cranking for pool. Only the policy authority may do it.
func (s *Service) SetPositionActive(ctx context.Context, poolID, caller types.Identity, active bool) error {
	keys, err := s.deriveKeys(poolID)
	if err != nil {
		return err
	}

	policy, err := s.loadPolicy(ctx, keys.policy)
	if err != nil {
		return err
	}
	if !caller.Equals(policy.Authority) {
		return types.NewErrorWithMsg(types.Unauthorized, "caller %s is not the policy authority", caller)
	}

	if err := s.db.SetPositionActive(ctx, keys.position, active); err != nil {
		return dbError(err, "failed to update honorary position of pool %s", poolID)
	}

	log.Ctx(ctx).Info().
		Stringer("pool_id", poolID).
		Bool("active", active).
		Msg("honorary position activity changed")
	return nil
}

func (s *Service) GetPositionState(ctx context.Context, poolID types.Identity) (*PositionState, error) {
	keys, err := s.deriveKeys(poolID)
	if err != nil {
		return nil, err
	}
	position, err := s.loadPosition(ctx, keys.position)
	if err != nil {
		return nil, err
	}
	policy, err := s.loadPolicy(ctx, keys.policy)
	if err != nil {
		return nil, err
	}
	progress, err := s.loadProgress(ctx, keys.progress)
	if err != nil {
		return nil, err
	}
	return &PositionState{
		Position: position,
		Policy:   policy,
		Progress: progress,
	}, nil
}

func (s *Service) loadPosition(ctx context.Context, key types.Identity) (*types.HonoraryPosition, error) {
	doc, err := s.db.GetPosition(ctx, key)
	if err != nil {
		return nil, dbError(err, "failed to get honorary position %s", key)
	}
	position, err := doc.ToHonoraryPosition()
	if err != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("corrupt honorary position %s: %w", key, err))
	}
	return position, nil
}

func (s *Service) loadPolicy(ctx context.Context, key types.Identity) (types.PolicyConfig, error) {
	doc, err := s.db.GetPolicy(ctx, key)
	if err != nil {
		return types.PolicyConfig{}, dbError(err, "failed to get policy %s", key)
	}
	return doc.ToPolicy(), nil
}

func (s *Service) loadProgress(ctx context.Context, key types.Identity) (types.DistributionProgress, error) {
	doc, err := s.db.GetProgress(ctx, key)
	if err != nil {
		return types.DistributionProgress{}, dbError(err, "failed to get distribution progress %s", key)
	}
	return doc.ToProgress(), nil
}

// dbError maps a storage failure to a coded error.
func dbError(err error, format string, args ...any) error {
	if db.IsNotFoundError(err) {
		return types.NewError(types.NotFound, fmt.Errorf(format+": %w", append(args, err)...))
	}
	return types.NewInternalServiceError(fmt.Errorf(format+": %w", append(args, err)...))
}
