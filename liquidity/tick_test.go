package liquidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

func absBig(v *big.Int) *big.Int {
	return new(big.Int).Abs(v)
}

func TestUpdateTick(t *testing.T) {
	global0, global1 := big.NewInt(500), big.NewInt(700)
	maxLiquidity := TickSpacingToMaxLiquidityPerTick(10)

	t.Run("initializes outside growth at or below current", func(t *testing.T) {
		tick := shared.NewTick()
		flipped, err := UpdateTick(tick, -10, 0, big.NewInt(1000), global0, global1, false, maxLiquidity)
		require.NoError(t, err)
		assert.True(t, flipped)
		assert.True(t, tick.Initialized)
		assert.Equal(t, "500", tick.FeeGrowthOutside0.String())
		assert.Equal(t, "700", tick.FeeGrowthOutside1.String())
		assert.Equal(t, "1000", tick.LiquidityNet.String())
		assert.Equal(t, "1000", tick.LiquidityGross.String())
	})

	t.Run("initializes outside growth to zero above current", func(t *testing.T) {
		tick := shared.NewTick()
		_, err := UpdateTick(tick, 10, 0, big.NewInt(1000), global0, global1, true, maxLiquidity)
		require.NoError(t, err)
		assert.Equal(t, 0, tick.FeeGrowthOutside0.Sign())
		assert.Equal(t, 0, tick.FeeGrowthOutside1.Sign())
		assert.Equal(t, "-1000", tick.LiquidityNet.String())
	})

	t.Run("gross bounds net through add and remove", func(t *testing.T) {
		tick := shared.NewTick()
		deltas := []struct {
			delta int64
			upper bool
		}{{300, false}, {200, true}, {-100, false}, {50, true}, {-200, true}}
		for _, d := range deltas {
			_, err := UpdateTick(tick, 0, 0, big.NewInt(d.delta), global0, global1, d.upper, maxLiquidity)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tick.LiquidityGross.Cmp(absBig(tick.LiquidityNet)), 0)
		}
		assert.Equal(t, "250", tick.LiquidityGross.String())
		assert.Equal(t, "150", tick.LiquidityNet.String())
	})

	t.Run("removing everything flips", func(t *testing.T) {
		tick := shared.NewTick()
		_, err := UpdateTick(tick, 0, 0, big.NewInt(10), global0, global1, false, maxLiquidity)
		require.NoError(t, err)
		flipped, err := UpdateTick(tick, 0, 0, big.NewInt(-10), global0, global1, false, maxLiquidity)
		require.NoError(t, err)
		assert.True(t, flipped)
		assert.Equal(t, 0, tick.LiquidityGross.Sign())
	})

	t.Run("errors leave the tick unchanged", func(t *testing.T) {
		tick := shared.NewTick()
		_, err := UpdateTick(tick, 0, 0, big.NewInt(-1), global0, global1, false, maxLiquidity)
		assert.ErrorIs(t, err, shared.ErrMathUnderflow)
		assert.False(t, tick.Initialized)

		_, err = UpdateTick(tick, 0, 0, new(big.Int).Add(maxLiquidity, big.NewInt(1)), global0, global1, false, maxLiquidity)
		assert.ErrorIs(t, err, shared.ErrMathOverflow)
		assert.Equal(t, 0, tick.LiquidityGross.Sign())

		_, err = UpdateTick(tick, shared.MaxTick+1, 0, big.NewInt(1), global0, global1, false, maxLiquidity)
		assert.ErrorIs(t, err, shared.ErrInvalidTick)
	})
}

func TestCrossTick(t *testing.T) {
	tick := shared.NewTick()
	_, err := UpdateTick(tick, 0, 0, big.NewInt(1000), big.NewInt(100), big.NewInt(0), false, nil)
	require.NoError(t, err)

	net := CrossTick(tick, big.NewInt(300), big.NewInt(5))
	assert.Equal(t, "1000", net.String())
	assert.Equal(t, "200", tick.FeeGrowthOutside0.String())
	assert.Equal(t, "5", tick.FeeGrowthOutside1.String())

	CrossTick(tick, big.NewInt(300), big.NewInt(5))
	assert.Equal(t, "100", tick.FeeGrowthOutside0.String())
	assert.Equal(t, 0, tick.FeeGrowthOutside1.Sign())

	ClearTick(tick)
	assert.False(t, tick.Initialized)
	assert.Equal(t, 0, tick.LiquidityGross.Sign())
}

func TestTickSpacingToMaxLiquidityPerTick(t *testing.T) {
	// spacing 1 covers every tick in [-443636, 443636]
	want := new(big.Int).Quo(shared.U128Max, big.NewInt(887273))
	assert.Equal(t, 0, TickSpacingToMaxLiquidityPerTick(1).Cmp(want))

	want = new(big.Int).Quo(shared.U128Max, big.NewInt(2*(443636/64)+1))
	assert.Equal(t, 0, TickSpacingToMaxLiquidityPerTick(64).Cmp(want))

	assert.Equal(t, 0, TickSpacingToMaxLiquidityPerTick(0).Sign())
}

func TestGetFeeGrowthInside(t *testing.T) {
	lower, upper := shared.NewTick(), shared.NewTick()
	lower.FeeGrowthOutside0 = big.NewInt(100)
	upper.FeeGrowthOutside0 = big.NewInt(200)

	inside0, inside1 := GetFeeGrowthInside(lower, upper, -100, 100, 0, big.NewInt(1000), big.NewInt(0))
	assert.Equal(t, "700", inside0.String())
	assert.Equal(t, 0, inside1.Sign())
}

func TestFeeGrowthFollowsPriceAcrossRange(t *testing.T) {
	global0, global1 := big.NewInt(0), big.NewInt(0)
	lower, upper := shared.NewTick(), shared.NewTick()
	liquidity := big.NewInt(10000)

	_, err := UpdateTick(lower, -100, 0, liquidity, global0, global1, false, nil)
	require.NoError(t, err)
	_, err = UpdateTick(upper, 100, 0, liquidity, global0, global1, true, nil)
	require.NoError(t, err)

	growth, err := ammmath.CalculateFeeGrowthQ64(1000, liquidity)
	require.NoError(t, err)
	global0 = ammmath.WrappingAddFeeGrowth(global0, growth)

	insideInRange, _ := GetFeeGrowthInside(lower, upper, -100, 100, 0, global0, global1)
	assert.Equal(t, 0, insideInRange.Cmp(growth))

	// price leaves the range downward, fees accrued afterwards are not earned
	CrossTick(lower, global0, global1)
	global0 = ammmath.WrappingAddFeeGrowth(global0, growth)

	insideBelow, _ := GetFeeGrowthInside(lower, upper, -100, 100, -101, global0, global1)
	assert.Equal(t, 0, insideBelow.Cmp(growth))
}
