package types

import "github.com/shopspring/decimal"

// FormatQuoteAmount renders a raw quote amount with the mint's decimals, e.g. 1500000 with 6 decimals is "1.5".
func FormatQuoteAmount(amount uint64, decimals int32) string {
	return decimal.NewFromUint64(amount).Shift(-decimals).String()
}
