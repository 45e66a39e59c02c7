// Package units converts between integer base-unit amounts (wei-style) and
// human-readable decimal amounts without ever passing through binary
// floating point. Power-of-ten scaling is done by exponent shifts, which are
// exact at every magnitude.
package units

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ratioPrecision bounds the fractional digits kept when dividing two
// arbitrary base-unit amounts. Power-of-ten denominators divide exactly
// well inside this bound.
const ratioPrecision = 36

// FromBase scales a base-unit integer down by 10^decimals.
// FromBase(1000000000000000000, 18) == 1 exactly.
func FromBase(amount *big.Int, decimals uint8) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// ToBase scales a decimal amount up by 10^decimals and rounds half away
// from zero to the nearest integer. The result must be representable as a
// non-negative integer base-unit quantity.
func ToBase(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	scaled := amount.Shift(int32(decimals)).Round(0)
	if scaled.Sign() < 0 {
		return nil, fmt.Errorf("units: amount %s is negative in base units", amount)
	}
	return scaled.BigInt(), nil
}

// Ratio returns out/in as a decimal. A zero input amount yields zero rather
// than a division fault.
func Ratio(out, in *big.Int) decimal.Decimal {
	if in == nil || in.Sign() == 0 {
		return decimal.Zero
	}
	if out == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(out, 0).DivRound(decimal.NewFromBigInt(in, 0), ratioPrecision)
}

// MinimumAfterSlippage applies a percentage slippage tolerance to a quoted
// output amount: out * (1 - tolerance/100). A tolerance of exactly 0 returns
// the input unchanged.
func MinimumAfterSlippage(out decimal.Decimal, tolerancePct float64) decimal.Decimal {
	tolerance := decimal.NewFromFloat(tolerancePct)
	multiplier := decimal.NewFromInt(1).Sub(tolerance.Div(decimal.NewFromInt(100)))
	return out.Mul(multiplier)
}
