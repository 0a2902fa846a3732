package math

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/krazyTry/ammcore-go/shared"
)

// U256 is an immutable 256-bit unsigned integer used as the intermediate
// width for every multiply-then-divide.
type U256 struct {
	u uint256.Int
}

func NewU256(v uint64) U256 {
	return U256{u: *uint256.NewInt(v)}
}

func U256FromBig(b *big.Int) (U256, error) {
	if b == nil {
		return U256{}, nil
	}
	if b.Sign() < 0 {
		return U256{}, shared.NewError(shared.ErrorCodeConversion, b)
	}
	u, overflow := uint256.FromBig(b)
	if overflow {
		return U256{}, shared.NewError(shared.ErrorCodeConversion, b)
	}
	return U256{u: *u}, nil
}

func U256FromDecimal(s string) (U256, error) {
	u, err := uint256.FromDecimal(s)
	if err != nil {
		return U256{}, shared.ErrConversion
	}
	return U256{u: *u}, nil
}

func MustU256FromDecimal(s string) U256 {
	v, err := U256FromDecimal(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (x U256) BigInt() *big.Int {
	return x.u.ToBig()
}

func (x U256) String() string {
	return x.u.Dec()
}

func (x U256) IsZero() bool {
	return x.u.IsZero()
}

func (x U256) BitLen() int {
	return x.u.BitLen()
}

func (x U256) Cmp(y U256) int {
	return x.u.Cmp(&y.u)
}

func (x U256) Lt(y U256) bool {
	return x.u.Lt(&y.u)
}

func (x U256) CheckedAdd(y U256) (U256, error) {
	var z U256
	if _, overflow := z.u.AddOverflow(&x.u, &y.u); overflow {
		return U256{}, shared.ErrMathOverflow
	}
	return z, nil
}

func (x U256) CheckedSub(y U256) (U256, error) {
	var z U256
	if _, underflow := z.u.SubOverflow(&x.u, &y.u); underflow {
		return U256{}, shared.ErrMathUnderflow
	}
	return z, nil
}

func (x U256) CheckedMul(y U256) (U256, error) {
	var z U256
	if _, overflow := z.u.MulOverflow(&x.u, &y.u); overflow {
		return U256{}, shared.ErrMathOverflow
	}
	return z, nil
}

func (x U256) CheckedDiv(y U256) (U256, error) {
	if y.IsZero() {
		return U256{}, shared.ErrDivisionByZero
	}
	var z U256
	z.u.Div(&x.u, &y.u)
	return z, nil
}

func (x U256) WrappingAdd(y U256) U256 {
	var z U256
	z.u.Add(&x.u, &y.u)
	return z
}

func (x U256) WrappingSub(y U256) U256 {
	var z U256
	z.u.Sub(&x.u, &y.u)
	return z
}

func (x U256) Lsh(n uint) U256 {
	var z U256
	z.u.Lsh(&x.u, n)
	return z
}

func (x U256) Rsh(n uint) U256 {
	var z U256
	z.u.Rsh(&x.u, n)
	return z
}

func (x U256) ToU128() (*big.Int, error) {
	if x.u.BitLen() > 128 {
		return nil, shared.NewError(shared.ErrorCodeConversion, x.BigInt())
	}
	return x.BigInt(), nil
}

func (x U256) ToU64() (uint64, error) {
	if !x.u.IsUint64() {
		return 0, shared.NewError(shared.ErrorCodeConversion, x.BigInt())
	}
	return x.u.Uint64(), nil
}

// MulDivU256 computes a*b/denominator with a 512-bit product.
func MulDivU256(a, b, denominator U256, rounding shared.Rounding) (U256, error) {
	if denominator.IsZero() {
		return U256{}, shared.ErrDivisionByZero
	}
	var z U256
	if _, overflow := z.u.MulDivOverflow(&a.u, &b.u, &denominator.u); overflow {
		return U256{}, shared.ErrMathOverflow
	}
	if rounding == shared.RoundingUp {
		var rem uint256.Int
		rem.MulMod(&a.u, &b.u, &denominator.u)
		if !rem.IsZero() {
			if _, overflow := z.u.AddOverflow(&z.u, uint256.NewInt(1)); overflow {
				return U256{}, shared.ErrMathOverflow
			}
		}
	}
	return z, nil
}
