package math

import (
	stdmath "math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/ammcore-go/shared"
)

func TestCheckedU64(t *testing.T) {
	_, err := CheckedAddU64(stdmath.MaxUint64, 1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedSubU64(1, 2)
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedMulU64(1<<32, 1<<32)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedDivU64(1, 0)
	assert.ErrorIs(t, err, shared.ErrDivisionByZero)

	v, err := CheckedMulU64(1<<31, 1<<32)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), v)
}

func TestCheckedI64(t *testing.T) {
	_, err := CheckedAddI64(stdmath.MaxInt64, 1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedAddI64(stdmath.MinInt64, -1)
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedSubI64(stdmath.MinInt64, 1)
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedSubI64(stdmath.MaxInt64, -1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedMulI64(stdmath.MinInt64, -1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedMulI64(stdmath.MaxInt64, -2)
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedDivI64(stdmath.MinInt64, -1)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	v, err := CheckedDivI64(-7, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), v)
}

func TestCheckedU128(t *testing.T) {
	_, err := CheckedAddU128(shared.U128Max, big.NewInt(1))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = SafeSubU128(big.NewInt(1), big.NewInt(2))
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedMulU128(shared.OneQ64, shared.OneQ64)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedDivU128(big.NewInt(1), big.NewInt(0))
	assert.ErrorIs(t, err, shared.ErrDivisionByZero)

	assert.Equal(t, 0, WrappingAddU128(shared.U128Max, big.NewInt(1)).Sign())
	assert.Equal(t, 0, WrappingSubU128(big.NewInt(0), big.NewInt(1)).Cmp(shared.U128Max))
}

func TestCheckedI128(t *testing.T) {
	_, err := CheckedAddI128(shared.I128Max, big.NewInt(1))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedSubI128(shared.I128Min, big.NewInt(1))
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	_, err = CheckedMulI128(shared.I128Min, big.NewInt(-1))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	_, err = CheckedDivI128(shared.I128Min, big.NewInt(-1))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	v, err := CheckedDivI128(big.NewInt(-7), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, "-3", v.String())
}

func TestSafeCasts(t *testing.T) {
	_, err := SafeCastU128ToU64(shared.OneQ64)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastI128ToI64(new(big.Int).Neg(shared.OneQ64))
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastU64ToI64(stdmath.MaxUint64)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastI64ToU64(-1)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastI64ToI32(stdmath.MaxInt32 + 1)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastU128ToI128(shared.U128Max)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = SafeCastI128ToU128(big.NewInt(-1))
	assert.ErrorIs(t, err, shared.ErrConversion)

	v, err := SafeCastI64ToI32(-443636)
	require.NoError(t, err)
	assert.Equal(t, int32(-443636), v)

	var target *shared.Error
	_, err = SafeCastU128ToU64(shared.OneQ64)
	require.ErrorAs(t, err, &target)
	assert.Equal(t, shared.ErrorCodeConversion, target.Code)
	assert.Equal(t, 0, target.Value.Cmp(shared.OneQ64))
}
