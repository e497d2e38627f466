package crank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

func TestEligibleBps(t *testing.T) {
	tests := []struct {
		name   string
		share  uint16
		locked uint64
		y0     uint64
		want   uint16
	}{
		{name: "share below locked fraction", share: 3_000, locked: 500_000, y0: 1_000_000, want: 3_000},
		{name: "locked fraction below share", share: 6_000, locked: 500_000, y0: 1_000_000, want: 5_000},
		{name: "fraction floors", share: 10_000, locked: 1, y0: 3, want: 3_333},
		{name: "more locked than baseline", share: 10_000, locked: 2_000_000, y0: 1_000_000, want: 10_000},
		{name: "nothing locked", share: 5_000, locked: 0, y0: 1_000_000, want: 0},
		{name: "no baseline", share: 5_000, locked: 100, y0: 0, want: 0},
		{name: "large amounts", share: 10_000, locked: math.MaxUint64 / 2, y0: math.MaxUint64, want: 4_999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EligibleBps(tt.share, tt.locked, tt.y0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMulDiv(t *testing.T) {
	got, err := mulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)

	got, err = mulDiv(7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)

	_, err = mulDiv(math.MaxUint64, 2, 1)
	assert.True(t, types.IsErrorCode(err, types.ArithmeticOverflow))

	_, err = mulDiv(1, 1, 0)
	assert.True(t, types.IsErrorCode(err, types.ArithmeticOverflow))
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := checkedAdd(math.MaxUint64, 1)
	assert.True(t, types.IsErrorCode(err, types.ArithmeticOverflow))

	sum, err := checkedAdd(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = checkedSub(1, 2)
	assert.True(t, types.IsErrorCode(err, types.ArithmeticOverflow))

	assert.Zero(t, saturatingSub(5, 9))
	assert.Equal(t, uint64(4), saturatingSub(9, 5))
}

func TestCheckQuoteOnly(t *testing.T) {
	assert.NoError(t, CheckQuoteOnly(types.HarvestedFee{QuoteAmount: 10}))
	assert.NoError(t, CheckQuoteOnly(types.HarvestedFee{}))

	err := CheckQuoteOnly(types.HarvestedFee{QuoteAmount: 10, BaseAmount: 1})
	assert.True(t, types.IsErrorCode(err, types.NonQuoteFeeDetected))
}
