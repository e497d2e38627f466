package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Db        DbConfig      `mapstructure:"db"`
	Crank     CrankConfig   `mapstructure:"crank"`
	Poller    PollerConfig  `mapstructure:"poller"`
	FeeSource ClientConfig  `mapstructure:"fee-source"`
	Ledger    ClientConfig  `mapstructure:"ledger"`
	Transfer  ClientConfig  `mapstructure:"transfer"`
	Queue     QueueConfig   `mapstructure:"queue"`
	Metrics   MetricsConfig `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("invalid db config: %w", err)
	}

	if err := cfg.Crank.Validate(); err != nil {
		return fmt.Errorf("invalid crank config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("invalid poller config: %w", err)
	}

	if err := cfg.FeeSource.Validate(); err != nil {
		return fmt.Errorf("invalid fee-source config: %w", err)
	}

	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid ledger config: %w", err)
	}

	if err := cfg.Transfer.Validate(); err != nil {
		return fmt.Errorf("invalid transfer config: %w", err)
	}

	if err := cfg.Queue.Validate(); err != nil {
		return fmt.Errorf("invalid queue config: %w", err)
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values can be overridden with environment variables, with the nested
// keys separated by "__", e.g. CRANK__PAGE_SIZE overrides crank.page-size.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
