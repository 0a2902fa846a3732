package math

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/ammcore-go/shared"
)

var (
	q64U256  = NewU256(1).Lsh(shared.Resolution)
	q128U256 = NewU256(1).Lsh(2 * shared.Resolution)
)

// MulDiv computes x*y/denominator in 256-bit space and narrows to u128.
func MulDiv(x, y, denominator *big.Int, rounding shared.Rounding) (*big.Int, error) {
	a, err := U256FromBig(x)
	if err != nil {
		return nil, err
	}
	b, err := U256FromBig(y)
	if err != nil {
		return nil, err
	}
	d, err := U256FromBig(denominator)
	if err != nil {
		return nil, err
	}
	r, err := MulDivU256(a, b, d, rounding)
	if err != nil {
		return nil, err
	}
	if r.BitLen() > 128 {
		return nil, shared.ErrMathOverflow
	}
	return r.BigInt(), nil
}

func MulShr(x, y *big.Int, offset uint) (*big.Int, error) {
	return MulDiv(x, y, new(big.Int).Lsh(big.NewInt(1), offset), shared.RoundingDown)
}

func ShlDiv(x, y *big.Int, offset uint, rounding shared.Rounding) (*big.Int, error) {
	return MulDiv(x, new(big.Int).Lsh(big.NewInt(1), offset), y, rounding)
}

func SqrtU64(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := n/2 + n%2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func SqrtU128(value *big.Int) *big.Int {
	if value == nil || value.Sign() <= 0 {
		return big.NewInt(0)
	}
	if value.Cmp(big.NewInt(1)) == 0 {
		return big.NewInt(1)
	}
	x := new(big.Int).Set(value)
	y := new(big.Int).Add(value, big.NewInt(1))
	y.Rsh(y, 1)

	for y.Cmp(x) < 0 {
		x.Set(y)
		y = new(big.Int).Add(x, new(big.Int).Quo(value, x))
		y.Rsh(y, 1)
	}
	return x
}

func Q64ToDecimal(num *big.Int, decimalPlaces int32) decimal.Decimal {
	if num == nil {
		return decimal.Zero
	}
	out := decimal.NewFromBigInt(num, 0).Div(decimal.NewFromBigInt(shared.OneQ64, 0))
	if decimalPlaces >= 0 {
		return out.Round(decimalPlaces)
	}
	return out
}

func DecimalToQ64(num decimal.Decimal) *big.Int {
	return num.Mul(decimal.NewFromBigInt(shared.OneQ64, 0)).Floor().BigInt()
}
