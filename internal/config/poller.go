package config

import (
	"errors"
	"time"
)

const (
	defaultMaxSettlementAttempts = 10
)

type PollerConfig struct {
	DistributionInterval  time.Duration `mapstructure:"distribution-interval"`
	SettlementInterval    time.Duration `mapstructure:"settlement-interval"`
	SettlementBatchLimit  int64         `mapstructure:"settlement-batch-limit"`
	MaxSettlementAttempts int           `mapstructure:"max-settlement-attempts"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.DistributionInterval <= 0 {
		return errors.New("distribution-interval must be positive")
	}

	if cfg.SettlementInterval <= 0 {
		return errors.New("settlement-interval must be positive")
	}

	if cfg.SettlementBatchLimit <= 0 {
		return errors.New("settlement-batch-limit must be positive")
	}

	if cfg.MaxSettlementAttempts <= 0 {
		cfg.MaxSettlementAttempts = defaultMaxSettlementAttempts
	}

	return nil
}
