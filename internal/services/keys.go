package services

import (
	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

type positionKeys struct {
	position types.Identity
	policy   types.Identity
	progress types.Identity
}

func (s *Service) deriveKeys(poolID types.Identity) (*positionKeys, error) {
	programID := s.cfg.Crank.ProgramKey()

	position, err := types.DeriveStateKey(programID, types.SeedHonoraryPosition, poolID)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	policy, err := types.DeriveStateKey(programID, types.SeedPolicy, poolID)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	progress, err := types.DeriveStateKey(programID, types.SeedProgress, poolID)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return &positionKeys{
		position: position,
		policy:   policy,
		progress: progress,
	}, nil
}

// PositionKey returns the storage key of the honorary position of pool.
func (s *Service) PositionKey(poolID types.Identity) (types.Identity, error) {
	keys, err := s.deriveKeys(poolID)
	if err != nil {
		return types.Identity{}, err
	}
	return keys.position, nil
}
