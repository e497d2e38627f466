package config

import (
	"errors"
	"net/url"
)

type DbConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db-name"`
	Address  string `mapstructure:"address"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Password != "" && cfg.Username == "" {
		return errors.New("username is required when a password is set")
	}

	if cfg.DbName == "" {
		return errors.New("db-name is required")
	}

	if cfg.Address == "" {
		return errors.New("address is required")
	}

	parsed, err := url.Parse(cfg.Address)
	if err != nil {
		return errors.New("address is not a valid url")
	}
	if parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv" {
		return errors.New("address must start with mongodb:// or mongodb+srv://")
	}

	return nil
}
