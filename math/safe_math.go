package math

import (
	stdmath "math"
	"math/big"
	"math/bits"

	"github.com/krazyTry/ammcore-go/shared"
)

func CheckedAddU64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, shared.ErrMathOverflow
	}
	return sum, nil
}

func CheckedSubU64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, shared.ErrMathUnderflow
	}
	return a - b, nil
}

func CheckedMulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, shared.ErrMathOverflow
	}
	return lo, nil
}

func CheckedDivU64(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, shared.ErrDivisionByZero
	}
	return a / b, nil
}

func CheckedAddI64(a, b int64) (int64, error) {
	sum := a + b
	if a > 0 && b > 0 && sum < 0 {
		return 0, shared.ErrMathOverflow
	}
	if a < 0 && b < 0 && sum >= 0 {
		return 0, shared.ErrMathUnderflow
	}
	return sum, nil
}

func CheckedSubI64(a, b int64) (int64, error) {
	diff := a - b
	if b < 0 && diff < a {
		return 0, shared.ErrMathOverflow
	}
	if b > 0 && diff > a {
		return 0, shared.ErrMathUnderflow
	}
	return diff, nil
}

func CheckedMulI64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if (a == -1 && b == stdmath.MinInt64) || (b == -1 && a == stdmath.MinInt64) || p/b != a {
		if (a < 0) != (b < 0) {
			return 0, shared.ErrMathUnderflow
		}
		return 0, shared.ErrMathOverflow
	}
	return p, nil
}

// CheckedDivI64 truncates toward zero.
func CheckedDivI64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, shared.ErrDivisionByZero
	}
	if a == stdmath.MinInt64 && b == -1 {
		return 0, shared.ErrMathOverflow
	}
	return a / b, nil
}

func checkU128(v *big.Int) (*big.Int, error) {
	if v.Sign() < 0 {
		return nil, shared.ErrMathUnderflow
	}
	if v.BitLen() > 128 {
		return nil, shared.ErrMathOverflow
	}
	return v, nil
}

func checkI128(v *big.Int) (*big.Int, error) {
	if v.Cmp(shared.I128Max) > 0 {
		return nil, shared.ErrMathOverflow
	}
	if v.Cmp(shared.I128Min) < 0 {
		return nil, shared.ErrMathUnderflow
	}
	return v, nil
}

func CheckedAddU128(a, b *big.Int) (*big.Int, error) {
	return checkU128(new(big.Int).Add(a, b))
}

func CheckedSubU128(a, b *big.Int) (*big.Int, error) {
	if b.Cmp(a) > 0 {
		return nil, shared.ErrMathUnderflow
	}
	return new(big.Int).Sub(a, b), nil
}

// SafeSubU128 is the checked u128 subtraction. Fee growth deltas must use
// WrappingSubFeeGrowth instead.
func SafeSubU128(a, b *big.Int) (*big.Int, error) {
	return CheckedSubU128(a, b)
}

func CheckedMulU128(a, b *big.Int) (*big.Int, error) {
	return checkU128(new(big.Int).Mul(a, b))
}

func CheckedDivU128(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, shared.ErrDivisionByZero
	}
	return new(big.Int).Quo(a, b), nil
}

func CheckedAddI128(a, b *big.Int) (*big.Int, error) {
	return checkI128(new(big.Int).Add(a, b))
}

func CheckedSubI128(a, b *big.Int) (*big.Int, error) {
	return checkI128(new(big.Int).Sub(a, b))
}

func CheckedMulI128(a, b *big.Int) (*big.Int, error) {
	return checkI128(new(big.Int).Mul(a, b))
}

// CheckedDivI128 truncates toward zero.
func CheckedDivI128(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, shared.ErrDivisionByZero
	}
	return checkI128(new(big.Int).Quo(a, b))
}

func WrappingAddU128(a, b *big.Int) *big.Int {
	sum := new(big.Int).Add(a, b)
	return sum.Mod(sum, shared.OneQ128)
}

func WrappingSubU128(a, b *big.Int) *big.Int {
	diff := new(big.Int).Sub(a, b)
	return diff.Mod(diff, shared.OneQ128)
}

func SafeCastU128ToU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, shared.NewError(shared.ErrorCodeConversion, v)
	}
	return v.Uint64(), nil
}

func SafeCastI128ToI64(v *big.Int) (int64, error) {
	if !v.IsInt64() {
		return 0, shared.NewError(shared.ErrorCodeConversion, v)
	}
	return v.Int64(), nil
}

func SafeCastU64ToI64(v uint64) (int64, error) {
	if v > stdmath.MaxInt64 {
		return 0, shared.NewError(shared.ErrorCodeConversion, new(big.Int).SetUint64(v))
	}
	return int64(v), nil
}

func SafeCastI64ToU64(v int64) (uint64, error) {
	if v < 0 {
		return 0, shared.NewErrorInt(shared.ErrorCodeConversion, v)
	}
	return uint64(v), nil
}

func SafeCastI64ToI32(v int64) (int32, error) {
	if v < stdmath.MinInt32 || v > stdmath.MaxInt32 {
		return 0, shared.NewErrorInt(shared.ErrorCodeConversion, v)
	}
	return int32(v), nil
}

func SafeCastU128ToI128(v *big.Int) (*big.Int, error) {
	if v.Sign() < 0 || v.Cmp(shared.I128Max) > 0 {
		return nil, shared.NewError(shared.ErrorCodeConversion, v)
	}
	return new(big.Int).Set(v), nil
}

func SafeCastI128ToU128(v *big.Int) (*big.Int, error) {
	if v.Sign() < 0 || v.BitLen() > 128 {
		return nil, shared.NewError(shared.ErrorCodeConversion, v)
	}
	return new(big.Int).Set(v), nil
}
