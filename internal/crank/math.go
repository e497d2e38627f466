package crank

import (
	sdkmath "cosmossdk.io/math"

	"github.com/kyolabs/honorary-fee-crank/internal/types"
)

// mulDiv returns floor(a * b / denom) computed on a widened intermediate.
func mulDiv(a, b, denom uint64) (uint64, error) {
	if denom == 0 {
		return 0, types.NewErrorWithMsg(types.ArithmeticOverflow, "division by zero")
	}
	product, err := sdkmath.NewIntFromUint64(a).SafeMul(sdkmath.NewIntFromUint64(b))
	if err != nil {
		return 0, types.NewError(types.ArithmeticOverflow, err)
	}
	quotient, err := product.SafeQuo(sdkmath.NewIntFromUint64(denom))
	if err != nil {
		return 0, types.NewError(types.ArithmeticOverflow, err)
	}
	return toUint64(quotient)
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, err := sdkmath.NewIntFromUint64(a).SafeAdd(sdkmath.NewIntFromUint64(b))
	if err != nil {
		return 0, types.NewError(types.ArithmeticOverflow, err)
	}
	return toUint64(sum)
}

func checkedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, types.NewErrorWithMsg(types.ArithmeticOverflow, "%d - %d underflows", a, b)
	}
	return a - b, nil
}

// saturatingSub returns a - b, or 0 when b exceeds a.
func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

func toUint64(v sdkmath.Int) (uint64, error) {
	if v.IsNegative() || !v.IsUint64() {
		return 0, types.NewErrorWithMsg(types.ArithmeticOverflow, "%s does not fit in 64 bits", v.String())
	}
	return v.Uint64(), nil
}
