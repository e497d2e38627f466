package crank

import "github.com/kyolabs/honorary-fee-crank/internal/types"

func ValidatePolicy(p types.PolicyConfig) error {
	if p.InvestorFeeShareBps > types.MaxBasisPoints {
		return types.NewErrorWithMsg(
			types.InvalidPolicy,
			"investor fee share %d bps exceeds %d", p.InvestorFeeShareBps, types.MaxBasisPoints,
		)
	}
	if p.MinPayoutQuote == 0 {
		return types.NewErrorWithMsg(types.InvalidPolicy, "min payout must be positive")
	}
	if p.Authority.IsZero() {
		return types.NewErrorWithMsg(types.InvalidPolicy, "authority is empty")
	}
	return nil
}

// UpdatePolicy returns next if caller is the current authority. The record is replaced wholesale.
func UpdatePolicy(current, next types.PolicyConfig, caller types.Identity) (types.PolicyConfig, error) {
	if !caller.Equals(current.Authority) {
		return current, types.NewErrorWithMsg(
			types.Unauthorized,
			"caller %s is not the policy authority", caller,
		)
	}
	if err := ValidatePolicy(next); err != nil {
		return current, err
	}
	return next, nil
}
