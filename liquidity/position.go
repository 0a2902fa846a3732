package liquidity

import (
	"math/big"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// UpdatePosition credits fees earned since the last snapshot, applies the
// liquidity delta and refreshes the snapshot. The position is unchanged on
// error.
func UpdatePosition(pos *shared.Position, liquidityDelta, feeGrowthInside0, feeGrowthInside1 *big.Int) error {
	if liquidityDelta == nil || feeGrowthInside0 == nil || feeGrowthInside1 == nil {
		return shared.ErrInvalidInput
	}
	if liquidityDelta.Sign() < 0 && pos.Liquidity.Sign() == 0 {
		return shared.ErrInvalidInput
	}

	var (
		liquidityAfter *big.Int
		err            error
	)
	if liquidityDelta.Sign() < 0 {
		liquidityAfter, err = ammmath.SafeSubU128(pos.Liquidity, new(big.Int).Neg(liquidityDelta))
	} else {
		liquidityAfter, err = ammmath.CheckedAddU128(pos.Liquidity, liquidityDelta)
	}
	if err != nil {
		return err
	}

	owed0, err := ammmath.CalculateFeesOwed(pos.Liquidity, pos.FeeGrowthInsideLast0, feeGrowthInside0)
	if err != nil {
		return err
	}
	owed1, err := ammmath.CalculateFeesOwed(pos.Liquidity, pos.FeeGrowthInsideLast1, feeGrowthInside1)
	if err != nil {
		return err
	}
	tokensOwed0, err := ammmath.CheckedAddU64(pos.TokensOwed0, owed0)
	if err != nil {
		return err
	}
	tokensOwed1, err := ammmath.CheckedAddU64(pos.TokensOwed1, owed1)
	if err != nil {
		return err
	}

	pos.Liquidity = liquidityAfter
	pos.FeeGrowthInsideLast0 = new(big.Int).Set(feeGrowthInside0)
	pos.FeeGrowthInsideLast1 = new(big.Int).Set(feeGrowthInside1)
	pos.TokensOwed0 = tokensOwed0
	pos.TokensOwed1 = tokensOwed1
	return nil
}

// CollectFees pays out up to the requested amounts and returns what was paid.
func CollectFees(pos *shared.Position, request0, request1 uint64) (uint64, uint64) {
	amount0 := min(request0, pos.TokensOwed0)
	amount1 := min(request1, pos.TokensOwed1)
	pos.TokensOwed0 -= amount0
	pos.TokensOwed1 -= amount1
	return amount0, amount1
}

func IsPositionEmpty(pos *shared.Position) bool {
	return pos.Liquidity.Sign() == 0 && pos.TokensOwed0 == 0 && pos.TokensOwed1 == 0
}
