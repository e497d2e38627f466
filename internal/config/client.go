package config

import (
	"errors"
	"net/url"
	"time"
)

const (
	defaultClientTimeout       = 15 * time.Second
	defaultClientMaxRetryTimes = 3
	defaultClientRetryInterval = time.Second
)

// ClientConfig configures an HTTP collaborator (fee source, ledger, transfer).
type ClientConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *ClientConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("url is required")
	}

	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return errors.New("url is not valid")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultClientTimeout
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultClientMaxRetryTimes
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultClientRetryInterval
	}

	return nil
}
