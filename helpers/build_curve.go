package helpers

import (
	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// CalculateTranches lays out contiguous tick ranges upward from the base
// tick. Inner tranches get more liquidity and the lowest fee tier.
func CalculateTranches(params shared.CalculateTranchesParams) ([]shared.Tranche, error) {
	if err := validateTranchesParams(params); err != nil {
		return nil, err
	}
	spacing := int64(params.TickSpacing)
	baseFeeBps := params.BaseFeeBps
	if baseFeeBps == 0 {
		baseFeeBps = shared.DefaultTrancheFeeBps
	}

	minAligned := int64(ammmath.GetNextInitializedTick(shared.MinTick, params.TickSpacing, false))
	maxAligned := int64(ammmath.GetNextInitializedTick(shared.MaxTick, params.TickSpacing, true))

	start := int64(ammmath.GetNextInitializedTick(params.BaseTick, params.TickSpacing, true))
	if start < minAligned {
		start = minAligned
	}
	if start >= maxAligned {
		return nil, shared.NewErrorInt(shared.ErrorCodeInvalidTick, int64(params.BaseTick))
	}

	width := spacing * shared.BaseTrancheSpacings
	tranches := make([]shared.Tranche, 0, params.NumTranches)
	for lower := start; len(tranches) < int(params.NumTranches); {
		upper := lower + width
		if upper > maxAligned {
			upper = maxAligned
		}
		tranches = append(tranches, shared.Tranche{
			TickLower: int32(lower),
			TickUpper: int32(upper),
		})
		if upper == maxAligned {
			break
		}
		lower = upper
		if params.WidthGrowthMode == shared.WidthGrowthModeExponential {
			width = nextWidth(width, spacing, int64(params.RangeMultiplier), maxAligned-minAligned)
		}
	}

	n := len(tranches)
	for i := range tranches {
		band := trancheBand(i, n)
		tranches[i].LiquidityWeight = uint16(shared.TrancheWeightBase + shared.TrancheWeightStep*(2-band))
		tranches[i].FeeTierBps = feeTierForBand(baseFeeBps, band)
	}
	return tranches, nil
}

func validateTranchesParams(params shared.CalculateTranchesParams) error {
	if params.NumTranches == 0 || params.NumTranches > shared.MaxTranches {
		return shared.NewErrorInt(shared.ErrorCodeInvalidParameter, int64(params.NumTranches))
	}
	if params.TickSpacing <= 0 {
		return shared.NewErrorInt(shared.ErrorCodeInvalidParameter, int64(params.TickSpacing))
	}
	if params.WidthGrowthMode != shared.WidthGrowthModeLinear && params.WidthGrowthMode != shared.WidthGrowthModeExponential {
		return shared.NewErrorInt(shared.ErrorCodeInvalidParameter, int64(params.WidthGrowthMode))
	}
	if params.WidthGrowthMode == shared.WidthGrowthModeExponential && params.RangeMultiplier < shared.MinExponentialRangeMult {
		return shared.NewErrorInt(shared.ErrorCodeInvalidParameter, int64(params.RangeMultiplier))
	}
	if params.BaseFeeBps > shared.BasisPointMax/2 {
		return shared.NewErrorInt(shared.ErrorCodeInvalidParameter, int64(params.BaseFeeBps))
	}
	if params.BaseTick < shared.MinTick || params.BaseTick > shared.MaxTick {
		return shared.NewErrorInt(shared.ErrorCodeInvalidTick, int64(params.BaseTick))
	}
	return nil
}

// nextWidth grows width by multiplier percent, saturating at limit, kept a
// positive multiple of spacing.
func nextWidth(width, spacing, multiplier, limit int64) int64 {
	next := width * multiplier / 100
	if next > limit {
		next = limit
	}
	next = next / spacing * spacing
	return max(next, spacing)
}

// trancheBand is 0 for the center tranches and 2 for the outermost ones.
func trancheBand(i, n int) int {
	distance := 2*i - (n - 1)
	if distance < 0 {
		distance = -distance
	}
	return min(distance*3/n, 2)
}

func feeTierForBand(baseFeeBps uint16, band int) uint16 {
	switch band {
	case 0:
		return baseFeeBps
	case 1:
		return baseFeeBps * 3 / 2
	default:
		return baseFeeBps * 2
	}
}

// DistributeLiquidity splits both totals by tranche weight, rounding every
// share down. The shares never add up to more than the totals.
func DistributeLiquidity(total0, total1 uint64, tranches []shared.Tranche) ([]shared.TrancheAllocation, error) {
	var weightSum uint64
	for _, t := range tranches {
		weightSum += uint64(t.LiquidityWeight)
	}
	if weightSum == 0 {
		return nil, shared.ErrInvalidWeights
	}

	out := make([]shared.TrancheAllocation, len(tranches))
	for i, t := range tranches {
		amount0, err := weightedShare(total0, t.LiquidityWeight, weightSum)
		if err != nil {
			return nil, err
		}
		amount1, err := weightedShare(total1, t.LiquidityWeight, weightSum)
		if err != nil {
			return nil, err
		}
		out[i] = shared.TrancheAllocation{Amount0: amount0, Amount1: amount1}
	}
	return out, nil
}

// DistributeLiquidityWithRemainder is DistributeLiquidity with the rounding
// dust added to the center tranche so the shares sum to the totals.
func DistributeLiquidityWithRemainder(total0, total1 uint64, tranches []shared.Tranche) ([]shared.TrancheAllocation, error) {
	out, err := DistributeLiquidity(total0, total1, tranches)
	if err != nil {
		return nil, err
	}
	var sum0, sum1 uint64
	for _, a := range out {
		sum0 += a.Amount0
		sum1 += a.Amount1
	}
	center := (len(out) - 1) / 2
	out[center].Amount0 += total0 - sum0
	out[center].Amount1 += total1 - sum1
	return out, nil
}

func weightedShare(total uint64, weight uint16, weightSum uint64) (uint64, error) {
	r, err := ammmath.MulDivU256(
		ammmath.NewU256(total),
		ammmath.NewU256(uint64(weight)),
		ammmath.NewU256(weightSum),
		shared.RoundingDown,
	)
	if err != nil {
		return 0, err
	}
	return r.ToU64()
}
