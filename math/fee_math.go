package math

import (
	"math/big"

	"github.com/krazyTry/ammcore-go/shared"
)

// CalculateFeeGrowthQ64 returns floor((feeAmount << 64) / liquidity).
func CalculateFeeGrowthQ64(feeAmount uint64, liquidity *big.Int) (*big.Int, error) {
	if liquidity == nil || liquidity.Sign() == 0 {
		return nil, shared.ErrDivisionByZero
	}
	return ShlDiv(new(big.Int).SetUint64(feeAmount), liquidity, shared.Resolution, shared.RoundingDown)
}

// Fee growth accumulators are allowed to wrap at 2^128; deltas are taken
// modulo 2^128 so that a wrapped counter still yields the true increment.

func WrappingAddFeeGrowth(a, b *big.Int) *big.Int {
	return WrappingAddU128(a, b)
}

func WrappingSubFeeGrowth(a, b *big.Int) *big.Int {
	return WrappingSubU128(a, b)
}

func CalculateFeeGrowthBelow(tickLower, tickCurrent int32, feeGrowthGlobal, feeGrowthOutsideLower *big.Int) *big.Int {
	if tickCurrent >= tickLower {
		return new(big.Int).Set(feeGrowthOutsideLower)
	}
	return WrappingSubFeeGrowth(feeGrowthGlobal, feeGrowthOutsideLower)
}

func CalculateFeeGrowthAbove(tickUpper, tickCurrent int32, feeGrowthGlobal, feeGrowthOutsideUpper *big.Int) *big.Int {
	if tickCurrent < tickUpper {
		return new(big.Int).Set(feeGrowthOutsideUpper)
	}
	return WrappingSubFeeGrowth(feeGrowthGlobal, feeGrowthOutsideUpper)
}

// CalculatePositionFeeGrowthInside returns global - below - above, wrapping.
func CalculatePositionFeeGrowthInside(
	tickLower, tickUpper, tickCurrent int32,
	feeGrowthGlobal, feeGrowthOutsideLower, feeGrowthOutsideUpper *big.Int,
) *big.Int {
	below := CalculateFeeGrowthBelow(tickLower, tickCurrent, feeGrowthGlobal, feeGrowthOutsideLower)
	above := CalculateFeeGrowthAbove(tickUpper, tickCurrent, feeGrowthGlobal, feeGrowthOutsideUpper)
	return WrappingSubFeeGrowth(WrappingSubFeeGrowth(feeGrowthGlobal, below), above)
}

// CalculateFeesOwed returns floor(liquidity * (current - last) / 2^64).
func CalculateFeesOwed(liquidity, feeGrowthInsideLast, feeGrowthInsideCurrent *big.Int) (uint64, error) {
	if liquidity == nil || liquidity.Sign() == 0 {
		return 0, nil
	}
	delta, err := U256FromBig(WrappingSubFeeGrowth(feeGrowthInsideCurrent, feeGrowthInsideLast))
	if err != nil {
		return 0, err
	}
	l, err := U256FromBig(liquidity)
	if err != nil {
		return 0, err
	}
	owed, err := MulDivU256(l, delta, q64U256, shared.RoundingDown)
	if err != nil {
		return 0, err
	}
	return owed.ToU64()
}
