package config

import (
	"errors"
	"time"
)

const defaultPublishTimeout = 5 * time.Second

type QueueConfig struct {
	Url            string        `mapstructure:"url"`
	QueueUser      string        `mapstructure:"user"`
	QueuePassword  string        `mapstructure:"password"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("url is required")
	}

	if cfg.Exchange == "" {
		return errors.New("exchange is required")
	}

	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}

	return nil
}
