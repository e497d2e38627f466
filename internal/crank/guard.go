package crank

import "github.com/kyolabs/honorary-fee-crank/internal/types"

// CheckQuoteOnly rejects a harvest that carries any base-token fee.
func CheckQuoteOnly(fee types.HarvestedFee) error {
	if fee.BaseAmount > 0 {
		return types.NewErrorWithMsg(
			types.NonQuoteFeeDetected,
			"harvested fee contains %d base units", fee.BaseAmount,
		)
	}
	return nil
}
