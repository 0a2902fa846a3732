package math

import (
	"math/big"

	"github.com/krazyTry/ammcore-go/shared"
)

func orderedSqrtPrices(a, b *big.Int) (U256, U256, error) {
	if a == nil || b == nil {
		return U256{}, U256{}, shared.ErrInvalidPrice
	}
	lower, err := U256FromBig(a)
	if err != nil {
		return U256{}, U256{}, err
	}
	upper, err := U256FromBig(b)
	if err != nil {
		return U256{}, U256{}, err
	}
	if upper.Lt(lower) {
		lower, upper = upper, lower
	}
	if lower.IsZero() {
		return U256{}, U256{}, shared.ErrInvalidPrice
	}
	return lower, upper, nil
}

// GetAmountAFromLiquidity returns L * (upper - lower) * 2^64 / (lower * upper).
func GetAmountAFromLiquidity(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, rounding shared.Rounding) (*big.Int, error) {
	lower, upper, err := orderedSqrtPrices(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	l, err := U256FromBig(liquidity)
	if err != nil {
		return nil, err
	}
	if l.BitLen() > 128 {
		return nil, shared.ErrMathOverflow
	}
	numerator := l.Lsh(shared.Resolution)
	delta := upper.WrappingSub(lower)

	r, err := MulDivU256(numerator, delta, upper, rounding)
	if err != nil {
		return nil, err
	}
	r, err = MulDivU256(r, NewU256(1), lower, rounding)
	if err != nil {
		return nil, err
	}
	return r.ToU128()
}

// GetAmountBFromLiquidity returns L * (upper - lower) / 2^64.
func GetAmountBFromLiquidity(lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, rounding shared.Rounding) (*big.Int, error) {
	lower, upper, err := orderedSqrtPrices(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	l, err := U256FromBig(liquidity)
	if err != nil {
		return nil, err
	}
	r, err := MulDivU256(l, upper.WrappingSub(lower), q64U256, rounding)
	if err != nil {
		return nil, err
	}
	return r.ToU128()
}

func GetLiquidityFromAmountA(amountA, lowerSqrtPrice, upperSqrtPrice *big.Int) (*big.Int, error) {
	lower, upper, err := orderedSqrtPrices(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	delta := upper.WrappingSub(lower)
	if delta.IsZero() {
		return nil, shared.ErrInvalidInput
	}
	a, err := U256FromBig(amountA)
	if err != nil {
		return nil, err
	}
	intermediate, err := MulDivU256(lower, upper, q64U256, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	r, err := MulDivU256(a, intermediate, delta, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return r.ToU128()
}

func GetLiquidityFromAmountB(amountB, lowerSqrtPrice, upperSqrtPrice *big.Int) (*big.Int, error) {
	lower, upper, err := orderedSqrtPrices(lowerSqrtPrice, upperSqrtPrice)
	if err != nil {
		return nil, err
	}
	delta := upper.WrappingSub(lower)
	if delta.IsZero() {
		return nil, shared.ErrInvalidInput
	}
	b, err := U256FromBig(amountB)
	if err != nil {
		return nil, err
	}
	r, err := MulDivU256(b, q64U256, delta, shared.RoundingDown)
	if err != nil {
		return nil, err
	}
	return r.ToU128()
}

// GetAmountsForLiquidity splits a position's liquidity into token amounts at
// the current sqrt price.
func GetAmountsForLiquidity(sqrtPrice, lowerSqrtPrice, upperSqrtPrice, liquidity *big.Int, rounding shared.Rounding) (*big.Int, *big.Int, error) {
	if sqrtPrice == nil || lowerSqrtPrice == nil || upperSqrtPrice == nil {
		return nil, nil, shared.ErrInvalidPrice
	}
	if lowerSqrtPrice.Cmp(upperSqrtPrice) > 0 {
		lowerSqrtPrice, upperSqrtPrice = upperSqrtPrice, lowerSqrtPrice
	}

	switch {
	case sqrtPrice.Cmp(lowerSqrtPrice) <= 0:
		amountA, err := GetAmountAFromLiquidity(lowerSqrtPrice, upperSqrtPrice, liquidity, rounding)
		if err != nil {
			return nil, nil, err
		}
		return amountA, big.NewInt(0), nil
	case sqrtPrice.Cmp(upperSqrtPrice) >= 0:
		amountB, err := GetAmountBFromLiquidity(lowerSqrtPrice, upperSqrtPrice, liquidity, rounding)
		if err != nil {
			return nil, nil, err
		}
		return big.NewInt(0), amountB, nil
	default:
		amountA, err := GetAmountAFromLiquidity(sqrtPrice, upperSqrtPrice, liquidity, rounding)
		if err != nil {
			return nil, nil, err
		}
		amountB, err := GetAmountBFromLiquidity(lowerSqrtPrice, sqrtPrice, liquidity, rounding)
		if err != nil {
			return nil, nil, err
		}
		return amountA, amountB, nil
	}
}
