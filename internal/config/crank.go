package config

import (
	"errors"
	"fmt"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

const (
	defaultPageSize               = 50
	defaultMaxConcurrentPositions = 4
)

type CrankConfig struct {
	// ProgramID scopes the derived state keys of every position.
	ProgramID              string   `mapstructure:"program-id"`
	PageSize               uint32   `mapstructure:"page-size"`
	MaxConcurrentPositions int      `mapstructure:"max-concurrent-positions"`
	Pools                  []string `mapstructure:"pools"`
	QuoteDecimals          int32    `mapstructure:"quote-decimals"`
}

func (cfg *CrankConfig) Validate() error {
	if cfg.ProgramID == "" {
		return errors.New("program-id is required")
	}
	if _, err := types.ParseIdentity(cfg.ProgramID); err != nil {
		return fmt.Errorf("program-id: %w", err)
	}

	for _, pool := range cfg.Pools {
		if _, err := types.ParseIdentity(pool); err != nil {
			return fmt.Errorf("pools: %w", err)
		}
	}

	if cfg.PageSize == 0 {
		cfg.PageSize = defaultPageSize
	}

	if cfg.MaxConcurrentPositions <= 0 {
		cfg.MaxConcurrentPositions = defaultMaxConcurrentPositions
	}

	if cfg.QuoteDecimals < 0 {
		return errors.New("quote-decimals must not be negative")
	}

	return nil
}

func (cfg *CrankConfig) ProgramKey() types.Identity {
	key, err := types.ParseIdentity(cfg.ProgramID)
	if err != nil {
		// Validate guarantees a well formed key
		panic(err)
	}
	return key
}

func (cfg *CrankConfig) PoolKeys() []types.Identity {
	keys := make([]types.Identity, 0, len(cfg.Pools))
	for _, pool := range cfg.Pools {
		key, err := types.ParseIdentity(pool)
		if err != nil {
			panic(err)
		}
		keys = append(keys, key)
	}
	return keys
}
