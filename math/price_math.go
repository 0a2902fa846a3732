package math

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/ammcore-go/decimal_math"
	"github.com/krazyTry/ammcore-go/shared"
)

var tickRatios = func() [shared.TickRatioTableSize]U256 {
	var out [shared.TickRatioTableSize]U256
	for i, s := range shared.TickRatioTable {
		out[i] = MustU256FromDecimal(s)
	}
	return out
}()

// GetSqrtPriceAtTick returns sqrt(1.0001^tick) as Q64.64.
func GetSqrtPriceAtTick(tick int32) (*big.Int, error) {
	ratio, err := sqrtPriceAtTick(tick)
	if err != nil {
		return nil, err
	}
	return ratio.BigInt(), nil
}

func sqrtPriceAtTick(tick int32) (U256, error) {
	if tick < shared.MinTick || tick > shared.MaxTick {
		return U256{}, shared.NewErrorInt(shared.ErrorCodeInvalidTick, int64(tick))
	}
	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	var err error
	ratio := q64U256
	for i := 0; i < shared.TickRatioTableSize; i++ {
		if absTick&(1<<uint(i)) == 0 {
			continue
		}
		ratio, err = MulDivU256(ratio, tickRatios[i], q64U256, shared.RoundingDown)
		if err != nil {
			return U256{}, err
		}
	}
	if tick < 0 {
		return q128U256.CheckedDiv(ratio)
	}
	return ratio, nil
}

// GetTickAtSqrtPrice returns the greatest tick whose sqrt price is <= sqrtPrice.
func GetTickAtSqrtPrice(sqrtPrice *big.Int) (int32, error) {
	if sqrtPrice == nil {
		return 0, shared.ErrInvalidPrice
	}
	if sqrtPrice.Cmp(shared.MinSqrtPriceX64) < 0 || sqrtPrice.Cmp(shared.MaxSqrtPriceX64) > 0 {
		return 0, shared.NewError(shared.ErrorCodeInvalidPrice, sqrtPrice)
	}
	target, err := U256FromBig(sqrtPrice)
	if err != nil {
		return 0, err
	}

	lo, hi := int64(shared.MinTick), int64(shared.MaxTick)
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		p, err := sqrtPriceAtTick(int32(mid))
		if err != nil {
			return 0, err
		}
		if p.Cmp(target) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return int32(lo), nil
}

// GetNextInitializedTick aligns tick to spacing, toward negative infinity
// when roundDown is set and toward positive infinity otherwise.
// spacing must be positive.
func GetNextInitializedTick(tick, spacing int32, roundDown bool) int32 {
	t, s := int64(tick), int64(spacing)
	q := t / s
	if t%s != 0 {
		if roundDown && t < 0 {
			q--
		}
		if !roundDown && t > 0 {
			q++
		}
	}
	return int32(q * s)
}

func IsValidTickIndex(tick, spacing int32) bool {
	return tick >= shared.MinTick && tick <= shared.MaxTick && spacing > 0 && tick%spacing == 0
}

func SqrtPriceX64ToPrice(sqrtPrice *big.Int, decimalsA, decimalsB int32) decimal.Decimal {
	s := Q64ToDecimal(sqrtPrice, -1)
	return s.Mul(s).Shift(decimalsA - decimalsB)
}

func TickIndexToPrice(tick int32, decimalsA, decimalsB int32) (decimal.Decimal, error) {
	sqrtPrice, err := GetSqrtPriceAtTick(tick)
	if err != nil {
		return decimal.Zero, err
	}
	return SqrtPriceX64ToPrice(sqrtPrice, decimalsA, decimalsB), nil
}

func PriceToSqrtPriceX64(price decimal.Decimal, decimalsA, decimalsB int32) (*big.Int, error) {
	if !price.IsPositive() {
		return nil, shared.ErrInvalidPrice
	}
	root, err := decimal_math.Sqrt(price.Shift(decimalsB-decimalsA), 256)
	if err != nil {
		return nil, err
	}
	sqrtPrice := DecimalToQ64(root)
	if sqrtPrice.Cmp(shared.MinSqrtPriceX64) < 0 || sqrtPrice.Cmp(shared.MaxSqrtPriceX64) > 0 {
		return nil, shared.NewError(shared.ErrorCodeInvalidPrice, sqrtPrice)
	}
	return sqrtPrice, nil
}
