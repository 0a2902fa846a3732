package math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/ammcore-go/shared"
)

func TestU256Checked(t *testing.T) {
	max := MustU256FromDecimal("115792089237316195423570985008687907853269984665640564039457584007913129639935")

	_, err := max.CheckedAdd(NewU256(1))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)
	assert.True(t, max.WrappingAdd(NewU256(1)).IsZero())

	_, err = NewU256(1).CheckedSub(NewU256(2))
	assert.ErrorIs(t, err, shared.ErrMathUnderflow)
	assert.Equal(t, 0, NewU256(1).WrappingSub(NewU256(2)).Cmp(max))

	_, err = max.CheckedMul(NewU256(2))
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = NewU256(1).CheckedDiv(NewU256(0))
	assert.ErrorIs(t, err, shared.ErrDivisionByZero)

	q, err := NewU256(10).CheckedDiv(NewU256(3))
	require.NoError(t, err)
	assert.Equal(t, "3", q.String())
}

func TestU256Conversions(t *testing.T) {
	_, err := U256FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, shared.ErrConversion)

	_, err = U256FromBig(new(big.Int).Lsh(big.NewInt(1), 256))
	assert.ErrorIs(t, err, shared.ErrConversion)

	_, err = U256FromDecimal("not a number")
	assert.ErrorIs(t, err, shared.ErrConversion)

	v := NewU256(1).Lsh(128)
	_, err = v.ToU128()
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = v.ToU64()
	assert.ErrorIs(t, err, shared.ErrConversion)

	n, err := NewU256(42).ToU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
}

func TestMulDivU256(t *testing.T) {
	t.Run("rounding", func(t *testing.T) {
		down, err := MulDivU256(NewU256(10), NewU256(10), NewU256(3), shared.RoundingDown)
		require.NoError(t, err)
		assert.Equal(t, "33", down.String())

		up, err := MulDivU256(NewU256(10), NewU256(10), NewU256(3), shared.RoundingUp)
		require.NoError(t, err)
		assert.Equal(t, "34", up.String())

		exact, err := MulDivU256(NewU256(10), NewU256(9), NewU256(3), shared.RoundingUp)
		require.NoError(t, err)
		assert.Equal(t, "30", exact.String())
	})

	t.Run("wide intermediate", func(t *testing.T) {
		a := NewU256(1).Lsh(200)
		got, err := MulDivU256(a, a, NewU256(1).Lsh(160), shared.RoundingDown)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Cmp(NewU256(1).Lsh(240)))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := MulDivU256(NewU256(1), NewU256(1), NewU256(0), shared.RoundingDown)
		assert.ErrorIs(t, err, shared.ErrDivisionByZero)

		a := NewU256(1).Lsh(200)
		_, err = MulDivU256(a, a, NewU256(1), shared.RoundingDown)
		assert.ErrorIs(t, err, shared.ErrMathOverflow)
	})
}

func TestMulDiv(t *testing.T) {
	got, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2), shared.RoundingUp)
	require.NoError(t, err)
	assert.Equal(t, "11", got.String())

	_, err = MulDiv(shared.U128Max, shared.U128Max, big.NewInt(1), shared.RoundingDown)
	assert.ErrorIs(t, err, shared.ErrMathOverflow)

	_, err = MulDiv(big.NewInt(-1), big.NewInt(1), big.NewInt(1), shared.RoundingDown)
	assert.ErrorIs(t, err, shared.ErrConversion)

	r, err := MulShr(shared.OneQ64, big.NewInt(5), 64)
	require.NoError(t, err)
	assert.Equal(t, "5", r.String())

	r, err = ShlDiv(big.NewInt(1), big.NewInt(3), 64, shared.RoundingDown)
	require.NoError(t, err)
	assert.Equal(t, "6148914691236517205", r.String())
}

func TestSqrt(t *testing.T) {
	cases := map[uint64]uint64{0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 15: 3, 16: 4, 17: 4, 1 << 62: 1 << 31, ^uint64(0): 4294967295}
	for n, want := range cases {
		assert.Equal(t, want, SqrtU64(n), "sqrt(%d)", n)
	}

	assert.Equal(t, "0", SqrtU128(big.NewInt(0)).String())
	assert.Equal(t, "18446744073709551615", SqrtU128(shared.U128Max).String())
	assert.Equal(t, "1000000000000", SqrtU128(new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)).String())
}
