package types

const (
	// MaxBasisPoints is 100% expressed in basis points.
	MaxBasisPoints uint16 = 10_000

	DefaultInvestorFeeShareBps uint16 = 5_000
	DefaultDailyCapQuote       uint64 = 0
	DefaultMinPayoutQuote      uint64 = 1_000
)

type PolicyConfig struct {
	InvestorFeeShareBps uint16
	// DailyCapQuote bounds the quote paid to investors per epoch. 0 means unlimited.
	DailyCapQuote  uint64
	MinPayoutQuote uint64
	Authority      Identity
}

func (p PolicyConfig) Uncapped() bool {
	return p.DailyCapQuote == 0
}

func DefaultPolicy(authority Identity) PolicyConfig {
	return PolicyConfig{
		InvestorFeeShareBps: DefaultInvestorFeeShareBps,
		DailyCapQuote:       DefaultDailyCapQuote,
		MinPayoutQuote:      DefaultMinPayoutQuote,
		Authority:           authority,
	}
}
