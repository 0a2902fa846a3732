package liquidity

import (
	"math/big"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// UpdateTick applies a signed liquidity delta to one boundary of a position.
// The tick is left untouched when an error is returned. flipped reports a
// change between zero and non-zero gross liquidity.
func UpdateTick(
	tick *shared.Tick,
	tickIndex, tickCurrent int32,
	liquidityDelta *big.Int,
	feeGrowthGlobal0, feeGrowthGlobal1 *big.Int,
	upper bool,
	maxLiquidity *big.Int,
) (bool, error) {
	if tickIndex < shared.MinTick || tickIndex > shared.MaxTick {
		return false, shared.NewErrorInt(shared.ErrorCodeInvalidTick, int64(tickIndex))
	}
	if liquidityDelta == nil {
		return false, shared.ErrInvalidInput
	}

	grossBefore := tick.LiquidityGross
	var (
		grossAfter *big.Int
		err        error
	)
	if liquidityDelta.Sign() < 0 {
		grossAfter, err = ammmath.SafeSubU128(grossBefore, new(big.Int).Neg(liquidityDelta))
	} else {
		grossAfter, err = ammmath.CheckedAddU128(grossBefore, liquidityDelta)
	}
	if err != nil {
		return false, err
	}
	if maxLiquidity != nil && grossAfter.Cmp(maxLiquidity) > 0 {
		return false, shared.NewError(shared.ErrorCodeMathOverflow, grossAfter)
	}

	var netAfter *big.Int
	if upper {
		netAfter, err = ammmath.CheckedSubI128(tick.LiquidityNet, liquidityDelta)
	} else {
		netAfter, err = ammmath.CheckedAddI128(tick.LiquidityNet, liquidityDelta)
	}
	if err != nil {
		return false, err
	}

	flipped := (grossAfter.Sign() == 0) != (grossBefore.Sign() == 0)

	if grossBefore.Sign() == 0 {
		// growth below the current tick is assumed to have happened below it
		if tickIndex <= tickCurrent {
			tick.FeeGrowthOutside0 = new(big.Int).Set(feeGrowthGlobal0)
			tick.FeeGrowthOutside1 = new(big.Int).Set(feeGrowthGlobal1)
		} else {
			tick.FeeGrowthOutside0 = big.NewInt(0)
			tick.FeeGrowthOutside1 = big.NewInt(0)
		}
		tick.Initialized = true
	}
	tick.LiquidityGross = grossAfter
	tick.LiquidityNet = netAfter
	return flipped, nil
}

// CrossTick flips the outside fee growth of a tick the price moves across and
// returns its net liquidity.
func CrossTick(tick *shared.Tick, feeGrowthGlobal0, feeGrowthGlobal1 *big.Int) *big.Int {
	tick.FeeGrowthOutside0 = ammmath.WrappingSubFeeGrowth(feeGrowthGlobal0, tick.FeeGrowthOutside0)
	tick.FeeGrowthOutside1 = ammmath.WrappingSubFeeGrowth(feeGrowthGlobal1, tick.FeeGrowthOutside1)
	return new(big.Int).Set(tick.LiquidityNet)
}

func ClearTick(tick *shared.Tick) {
	*tick = *shared.NewTick()
}

// TickSpacingToMaxLiquidityPerTick spreads u128 liquidity evenly over every
// usable tick for the spacing.
func TickSpacingToMaxLiquidityPerTick(tickSpacing int32) *big.Int {
	if tickSpacing <= 0 {
		return big.NewInt(0)
	}
	minTick := (shared.MinTick / tickSpacing) * tickSpacing
	maxTick := (shared.MaxTick / tickSpacing) * tickSpacing
	numTicks := int64((maxTick-minTick)/tickSpacing) + 1
	return new(big.Int).Quo(shared.U128Max, big.NewInt(numTicks))
}

// GetFeeGrowthInside reads the inside growth for both tokens from the two
// boundary ticks.
func GetFeeGrowthInside(
	lower, upper *shared.Tick,
	tickLower, tickUpper, tickCurrent int32,
	feeGrowthGlobal0, feeGrowthGlobal1 *big.Int,
) (*big.Int, *big.Int) {
	inside0 := ammmath.CalculatePositionFeeGrowthInside(
		tickLower, tickUpper, tickCurrent,
		feeGrowthGlobal0, lower.FeeGrowthOutside0, upper.FeeGrowthOutside0,
	)
	inside1 := ammmath.CalculatePositionFeeGrowthInside(
		tickLower, tickUpper, tickCurrent,
		feeGrowthGlobal1, lower.FeeGrowthOutside1, upper.FeeGrowthOutside1,
	)
	return inside0, inside1
}
